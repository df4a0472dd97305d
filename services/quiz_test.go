package services

import (
	"strings"
	"testing"

	"card-collection-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizFixture(t *testing.T, catalogSize int) (*QuizService, *models.User) {
	t.Helper()
	db := newTestDB(t)
	quiz := NewQuizService(db, testRand(), stubSigner{})
	user := mustUser(t, db, "asker@ipt.ch")
	testCatalog(t, db, catalogSize)
	return quiz, user
}

func correctAnswerFor(t *testing.T, quiz *QuizService, quizID string) string {
	t.Helper()
	var row models.Quiz
	require.NoError(t, quiz.DB.Where("id = ?", quizID).First(&row).Error)
	var card models.Card
	require.NoError(t, quiz.DB.First(&card, row.CardID).Error)
	return attributeValue(&card, AttributeType(row.AnswerType))
}

func TestQuizService_GenerateQuestion(t *testing.T) {
	quiz, user := newQuizFixture(t, 5)

	payload, err := quiz.GenerateQuestion(user, AttrName, AttrAcronym, 4)
	require.NoError(t, err)

	assert.Equal(t, AttrName, payload.QuestionType)
	assert.Equal(t, AttrAcronym, payload.AnswerType)
	assert.Len(t, payload.Options, 4)
	assert.Equal(t, 10, payload.Points)
	assert.Contains(t, payload.Question, "Wie lautet das Kürzel von")

	// The correct answer is among the offered options.
	expected := correctAnswerFor(t, quiz, payload.QuizID)
	values := make([]string, 0, len(payload.Options))
	for _, o := range payload.Options {
		values = append(values, o.Value)
	}
	assert.Contains(t, values, expected)

	// The persisted row captures the posed question.
	var row models.Quiz
	require.NoError(t, quiz.DB.Where("id = ?", payload.QuizID).First(&row).Error)
	assert.Equal(t, user.ID, row.UserID)
	assert.Equal(t, 4, row.OptionCount)
	assert.Nil(t, row.Correct)
}

func TestQuizService_GenerateQuestion_randomTypesResolveToLegalPair(t *testing.T) {
	quiz, user := newQuizFixture(t, 9)

	for i := 0; i < 10; i++ {
		payload, err := quiz.GenerateQuestion(user, AttrRandom, AttrRandom, 2)
		require.NoError(t, err)
		_, ok := questionTable[questionKey{payload.QuestionType, payload.AnswerType}]
		assert.True(t, ok, "resolved pair %s -> %s must be legal", payload.QuestionType, payload.AnswerType)
	}
}

func TestQuizService_GenerateQuestion_illegalPair(t *testing.T) {
	quiz, user := newQuizFixture(t, 5)

	_, err := quiz.GenerateQuestion(user, AttrJob, AttrJob, 2)
	require.Error(t, err)
	assert.Equal(t, KindIllegalQuestionPair, KindOf(err))

	_, err = quiz.GenerateQuestion(user, "BIRTHDAY", AttrName, 2)
	require.Error(t, err)
	assert.Equal(t, KindIllegalQuestionPair, KindOf(err))
}

func TestQuizService_GenerateQuestion_optionCountFloor(t *testing.T) {
	quiz, user := newQuizFixture(t, 5)

	// optionCount 1 would divide by zero in the penalty formula.
	_, err := quiz.GenerateQuestion(user, AttrName, AttrAcronym, 1)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestQuizService_GenerateQuestion_dedupesCollidingAnswers(t *testing.T) {
	db := newTestDB(t)
	quiz := NewQuizService(db, testRand(), stubSigner{})
	user := mustUser(t, db, "asker@ipt.ch")

	// Two of three cards share a job: only two distinguishable options exist.
	mustCard(t, db, models.Card{Name: "A", Acronym: "AAA", Job: "Pilotin"})
	mustCard(t, db, models.Card{Name: "B", Acronym: "BBB", Job: "Pilotin"})
	mustCard(t, db, models.Card{Name: "C", Acronym: "CCC", Job: "Tierarzt"})

	_, err := quiz.GenerateQuestion(user, AttrName, AttrJob, 3)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	payload, err := quiz.GenerateQuestion(user, AttrName, AttrJob, 2)
	require.NoError(t, err)
	assert.Len(t, payload.Options, 2)
	assert.NotEqual(t, strings.ToLower(payload.Options[0].Value), strings.ToLower(payload.Options[1].Value))
}

func TestQuizService_SubmitAnswer_scoring(t *testing.T) {
	quiz, user := newQuizFixture(t, 5)

	// NAME -> ACRONYM pays 10 points; with 4 options a miss costs round(10/3) = 3.
	payload, err := quiz.GenerateQuestion(user, AttrName, AttrAcronym, 4)
	require.NoError(t, err)

	result, err := quiz.SubmitAnswer(payload.QuizID, correctAnswerFor(t, quiz, payload.QuizID))
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, 10, result.ScoreChange)
	assert.Equal(t, 10, result.TotalScore)

	payload, err = quiz.GenerateQuestion(user, AttrName, AttrAcronym, 4)
	require.NoError(t, err)

	result, err = quiz.SubmitAnswer(payload.QuizID, "ZZZ")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, -3, result.ScoreChange)
	assert.Equal(t, 7, result.TotalScore)
	assert.NotEmpty(t, result.CorrectAnswer)
}

func TestQuizService_SubmitAnswer_onlyOnce(t *testing.T) {
	quiz, user := newQuizFixture(t, 5)

	payload, err := quiz.GenerateQuestion(user, AttrName, AttrAcronym, 4)
	require.NoError(t, err)

	answer := correctAnswerFor(t, quiz, payload.QuizID)
	_, err = quiz.SubmitAnswer(payload.QuizID, answer)
	require.NoError(t, err)

	_, err = quiz.SubmitAnswer(payload.QuizID, answer)
	require.Error(t, err)
	assert.Equal(t, KindAlreadyAnswered, KindOf(err))

	// The second submission left the score untouched.
	var reloaded models.User
	require.NoError(t, quiz.DB.First(&reloaded, user.ID).Error)
	assert.Equal(t, 10, reloaded.QuizScore)
}

func TestQuizService_SubmitAnswer_unknownQuiz(t *testing.T) {
	quiz, _ := newQuizFixture(t, 5)

	_, err := quiz.SubmitAnswer("00000000-0000-0000-0000-000000000000", "x")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestQuizService_imageAnswersCompareByKey(t *testing.T) {
	quiz, user := newQuizFixture(t, 4)

	payload, err := quiz.GenerateQuestion(user, AttrName, AttrImage, 3)
	require.NoError(t, err)

	// Options expose both the stable key and a display URL.
	for _, o := range payload.Options {
		assert.True(t, strings.HasSuffix(o.Value, ".jpg"), "value %q should be the image key", o.Value)
		assert.True(t, strings.HasPrefix(o.ImageURL, "https://img.test/"), "url %q should be signed", o.ImageURL)
	}

	// Submitting the key of the correct card counts, URL churn notwithstanding.
	expected := correctAnswerFor(t, quiz, payload.QuizID)
	result, err := quiz.SubmitAnswer(payload.QuizID, expected)
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, expected, result.CorrectAnswer)
}

func TestQuizService_imageQuestionRendersSignedURL(t *testing.T) {
	quiz, user := newQuizFixture(t, 4)

	payload, err := quiz.GenerateQuestion(user, AttrImage, AttrName, 3)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(payload.QuestionImageURL, "https://img.test/"))
	assert.Equal(t, "Wer ist auf diesem Kärtli zu sehen?", payload.Question)
}
