package services

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"card-collection-system/models"
	"card-collection-system/utils/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageSigner issues a short-lived readable URL for a card image key. Signed
// URLs are display-only — correctness checks always run on the key itself.
type ImageSigner interface {
	SignedImageURL(key string) (string, error)
}

const dateLayout = "02.01.2006"

// QuizService generates trivia questions from card attributes and scores a
// single answer per question. Randomness is injected so tests can pin outcomes.
type QuizService struct {
	DB     *gorm.DB
	Rand   *rand.Rand
	Signer ImageSigner
}

func NewQuizService(db *gorm.DB, rng *rand.Rand, signer ImageSigner) *QuizService {
	return &QuizService{DB: db, Rand: rng, Signer: signer}
}

// AnswerOption is one offered answer. ImageURL is only set for image answers;
// Value then carries the image key the client echoes back on submission.
type AnswerOption struct {
	Value    string `json:"value"`
	ImageURL string `json:"image_url,omitempty"`
}

type QuestionPayload struct {
	QuizID           string         `json:"quiz_id"`
	QuestionType     AttributeType  `json:"question_type"`
	AnswerType       AttributeType  `json:"answer_type"`
	Question         string         `json:"question"`
	QuestionImageURL string         `json:"question_image_url,omitempty"`
	Options          []AnswerOption `json:"options"`
	Points           int            `json:"points"`
}

type AnswerResult struct {
	Correct       bool   `json:"correct"`
	Given         string `json:"given"`
	CorrectAnswer string `json:"correct_answer"`
	ScoreChange   int    `json:"score_change"`
	TotalScore    int    `json:"total_score"`
}

// GenerateQuestion builds a question for the asking user. RANDOM types are
// resolved against the compatibility table, the candidate pool is deduplicated
// by answer value so no two offered options read the same, and the posed
// question is persisted before the payload is returned.
func (s *QuizService) GenerateQuestion(user *models.User, questionType, answerType AttributeType, optionCount int) (*QuestionPayload, error) {
	// optionCount 1 would make the wrong-answer penalty divide by zero.
	if optionCount < 2 {
		return nil, ValidationErr("option count must be at least 2, got %d", optionCount)
	}
	if !isKnownAttribute(questionType) || !isKnownAttribute(answerType) {
		return nil, IllegalQuestionPairErr("unknown attribute type %s/%s", questionType, answerType)
	}

	questionType, answerType, err := s.resolveTypes(questionType, answerType)
	if err != nil {
		return nil, err
	}
	spec, ok := questionTable[questionKey{questionType, answerType}]
	if !ok {
		return nil, IllegalQuestionPairErr("no question template for %s -> %s", questionType, answerType)
	}

	var cards []models.Card
	if err := s.DB.Find(&cards).Error; err != nil {
		return nil, persistenceErr(err)
	}

	candidates := s.dedupeByAnswer(cards, questionType, answerType)
	if len(candidates) < optionCount {
		return nil, ValidationErr("only %d distinct cards available for %s -> %s, need %d",
			len(candidates), questionType, answerType, optionCount)
	}

	s.Rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	options := candidates[:optionCount]
	correct := options[s.Rand.Intn(optionCount)]

	quiz := models.Quiz{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		QuestionType: string(questionType),
		AnswerType:   string(answerType),
		CardID:       correct.ID,
		OptionCount:  optionCount,
		QuestionedAt: time.Now(),
	}
	if err := s.DB.Create(&quiz).Error; err != nil {
		return nil, persistenceErr(err)
	}

	payload := &QuestionPayload{
		QuizID:       quiz.ID,
		QuestionType: questionType,
		AnswerType:   answerType,
		Points:       spec.Points,
	}

	if strings.Contains(spec.Template, "%s") {
		payload.Question = fmt.Sprintf(spec.Template, attributeValue(&correct, questionType))
	} else {
		payload.Question = spec.Template
	}
	if questionType == AttrImage {
		url, err := s.Signer.SignedImageURL(correct.ImageKey)
		if err != nil {
			return nil, persistenceErr(err)
		}
		payload.QuestionImageURL = url
	}

	for _, card := range options {
		opt := AnswerOption{Value: attributeValue(&card, answerType)}
		if answerType == AttrImage {
			url, err := s.Signer.SignedImageURL(card.ImageKey)
			if err != nil {
				return nil, persistenceErr(err)
			}
			opt.ImageURL = url
		}
		payload.Options = append(payload.Options, opt)
	}

	logger.Debugf("quiz: %s asked %s -> %s with %d options", user.Email, questionType, answerType, optionCount)
	return payload, nil
}

// SubmitAnswer scores the one allowed answer for a quiz. A correct answer pays
// the pair's point value; a wrong one costs round(points/(optionCount-1)), so a
// uniform random guess nets out to roughly zero.
func (s *QuizService) SubmitAnswer(quizID, given string) (*AnswerResult, error) {
	var result AnswerResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var quiz models.Quiz
		err := tx.Where("id = ?", quizID).First(&quiz).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundErr("quiz %s not found", quizID)
		}
		if err != nil {
			return persistenceErr(err)
		}
		if quiz.Correct != nil {
			return AlreadyAnsweredErr("quiz %s was already answered", quizID)
		}

		var card models.Card
		if err := tx.First(&card, quiz.CardID).Error; err != nil {
			return persistenceErr(err)
		}

		spec, ok := questionTable[questionKey{AttributeType(quiz.QuestionType), AttributeType(quiz.AnswerType)}]
		if !ok {
			return IllegalQuestionPairErr("no question template for %s -> %s", quiz.QuestionType, quiz.AnswerType)
		}

		expected := attributeValue(&card, AttributeType(quiz.AnswerType))
		correct := strings.EqualFold(strings.TrimSpace(given), expected)

		scoreChange := spec.Points
		if !correct {
			scoreChange = -int(math.Round(float64(spec.Points) / float64(quiz.OptionCount-1)))
		}

		now := time.Now()
		if err := tx.Model(&quiz).Updates(map[string]interface{}{
			"correct":     correct,
			"answered_at": now,
		}).Error; err != nil {
			return persistenceErr(err)
		}
		if err := tx.Model(&models.User{}).Where("id = ?", quiz.UserID).
			UpdateColumn("quiz_score", gorm.Expr("quiz_score + ?", scoreChange)).Error; err != nil {
			return persistenceErr(err)
		}

		var user models.User
		if err := tx.First(&user, quiz.UserID).Error; err != nil {
			return persistenceErr(err)
		}

		result = AnswerResult{
			Correct:       correct,
			Given:         given,
			CorrectAnswer: expected,
			ScoreChange:   scoreChange,
			TotalScore:    user.QuizScore,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("quiz: %s answered %s, score change %+d", quizID, map[bool]string{true: "correctly", false: "wrong"}[result.Correct], result.ScoreChange)
	return &result, nil
}

// resolveTypes replaces RANDOM with a uniformly sampled legal counterpart.
func (s *QuizService) resolveTypes(questionType, answerType AttributeType) (AttributeType, AttributeType, error) {
	switch {
	case questionType == AttrRandom && answerType == AttrRandom:
		var pairs []questionKey
		for _, q := range attributeOrder {
			for _, a := range attributeOrder {
				if _, ok := questionTable[questionKey{q, a}]; ok {
					pairs = append(pairs, questionKey{q, a})
				}
			}
		}
		pick := pairs[s.Rand.Intn(len(pairs))]
		return pick.Question, pick.Answer, nil
	case questionType == AttrRandom:
		legal := legalQuestionsFor(answerType)
		if len(legal) == 0 {
			return "", "", IllegalQuestionPairErr("no legal question type for answer %s", answerType)
		}
		return legal[s.Rand.Intn(len(legal))], answerType, nil
	case answerType == AttrRandom:
		legal := legalAnswersFor(questionType)
		if len(legal) == 0 {
			return "", "", IllegalQuestionPairErr("no legal answer type for question %s", questionType)
		}
		return questionType, legal[s.Rand.Intn(len(legal))], nil
	default:
		return questionType, answerType, nil
	}
}

// dedupeByAnswer drops cards with missing attributes and keeps one random
// representative per distinct answer value, so a quiz never offers two
// indistinguishable options.
func (s *QuizService) dedupeByAnswer(cards []models.Card, questionType, answerType AttributeType) []models.Card {
	groups := make(map[string][]models.Card)
	for _, card := range cards {
		if attributeValue(&card, questionType) == "" || attributeValue(&card, answerType) == "" {
			continue
		}
		key := strings.ToLower(attributeValue(&card, answerType))
		groups[key] = append(groups[key], card)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]models.Card, 0, len(keys))
	for _, k := range keys {
		group := groups[k]
		out = append(out, group[s.Rand.Intn(len(group))])
	}
	return out
}

// attributeValue renders a card attribute for grouping, comparison, and
// display. IMAGE yields the stable image key — signed URLs change per request
// and must never be compared.
func attributeValue(card *models.Card, attr AttributeType) string {
	switch attr {
	case AttrImage:
		return card.ImageKey
	case AttrName:
		return card.Name
	case AttrJob:
		return card.Job
	case AttrAcronym:
		return card.Acronym
	case AttrStartAtIPT:
		if card.StartAtIPT.IsZero() {
			return ""
		}
		return card.StartAtIPT.Format(dateLayout)
	case AttrWishDestination:
		return card.WishDestination
	case AttrWishPerson:
		return card.WishPerson
	case AttrWishSkill:
		return card.WishSkill
	case AttrBestAdvice:
		return card.BestAdvice
	default:
		return ""
	}
}
