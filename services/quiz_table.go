package services

// AttributeType enumerates the card attributes a quiz question or answer can
// be built from. RANDOM is resolved at generation time and never persisted.
type AttributeType string

const (
	AttrImage           AttributeType = "IMAGE"
	AttrName            AttributeType = "NAME"
	AttrJob             AttributeType = "JOB"
	AttrAcronym         AttributeType = "ACRONYM"
	AttrStartAtIPT      AttributeType = "START_AT_IPT"
	AttrWishDestination AttributeType = "WISH_DESTINATION"
	AttrWishPerson      AttributeType = "WISH_PERSON"
	AttrWishSkill       AttributeType = "WISH_SKILL"
	AttrBestAdvice      AttributeType = "BEST_ADVICE"
	AttrRandom          AttributeType = "RANDOM"
)

type questionKey struct {
	Question AttributeType
	Answer   AttributeType
}

// questionSpec holds the rendering template and the stake of a legal pair.
// Templates with a %s get the correct card's question attribute interpolated.
type questionSpec struct {
	Template string
	Points   int
}

// questionTable is the single source of truth for which question/answer pairs
// are legal, how they read, and what they pay. Asking for the same attribute
// that is being answered is never listed.
var questionTable = map[questionKey]questionSpec{
	{AttrImage, AttrName}:    {"Wer ist auf diesem Kärtli zu sehen?", 10},
	{AttrImage, AttrAcronym}: {"Welches Kürzel gehört zur abgebildeten Person?", 15},
	{AttrImage, AttrJob}:     {"Was war der Kindheits-Traumberuf der abgebildeten Person?", 20},

	{AttrName, AttrImage}:           {"Welches Kärtli zeigt %s?", 10},
	{AttrName, AttrAcronym}:         {"Wie lautet das Kürzel von %s?", 10},
	{AttrName, AttrJob}:             {"Was war der Kindheits-Traumberuf von %s?", 15},
	{AttrName, AttrStartAtIPT}:      {"Wann hat %s bei ipt angefangen?", 20},
	{AttrName, AttrWishDestination}: {"Wohin würde %s am liebsten reisen?", 25},
	{AttrName, AttrWishPerson}:      {"Mit wem würde %s am liebsten einen Tag verbringen?", 25},
	{AttrName, AttrWishSkill}:       {"Welche Fähigkeit hätte %s gerne?", 25},
	{AttrName, AttrBestAdvice}:      {"Welchen Ratschlag hat %s einmal bekommen?", 30},

	{AttrAcronym, AttrName}:         {"Wer verbirgt sich hinter dem Kürzel %s?", 10},
	{AttrJob, AttrName}:             {"Wer wollte als Kind %s werden?", 15},
	{AttrStartAtIPT, AttrName}:      {"Wer hat am %s bei ipt angefangen?", 20},
	{AttrWishDestination, AttrName}: {"Wer würde am liebsten nach %s reisen?", 25},
	{AttrWishPerson, AttrName}:      {"Wer würde am liebsten einen Tag mit %s verbringen?", 25},
	{AttrWishSkill, AttrName}:       {"Wer hätte gerne die Fähigkeit «%s»?", 25},
	{AttrBestAdvice, AttrName}:      {"Wer hat diesen Ratschlag bekommen: «%s»?", 30},
}

// legalAnswersFor lists the answer types compatible with a fixed question type,
// in stable order for deterministic sampling with a seeded generator.
func legalAnswersFor(question AttributeType) []AttributeType {
	var out []AttributeType
	for _, a := range attributeOrder {
		if _, ok := questionTable[questionKey{question, a}]; ok {
			out = append(out, a)
		}
	}
	return out
}

func legalQuestionsFor(answer AttributeType) []AttributeType {
	var out []AttributeType
	for _, q := range attributeOrder {
		if _, ok := questionTable[questionKey{q, answer}]; ok {
			out = append(out, q)
		}
	}
	return out
}

// attributeOrder fixes iteration order over the enum (map iteration is random).
var attributeOrder = []AttributeType{
	AttrImage, AttrName, AttrJob, AttrAcronym, AttrStartAtIPT,
	AttrWishDestination, AttrWishPerson, AttrWishSkill, AttrBestAdvice,
}

func isKnownAttribute(t AttributeType) bool {
	if t == AttrRandom {
		return true
	}
	for _, a := range attributeOrder {
		if a == t {
			return true
		}
	}
	return false
}
