package services

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
)

// mbiTerms are the phrases counted toward each burnout dimension.
var mbiTerms = map[domain.MBIDimension][]string{
	domain.EmotionalExhaustion: {
		"exhausted", "exhaustion", "drained", "drained out", "worn out", "burned out",
		"burnout", "fatigued", "tired", "weary", "spent", "depleted", "empty",
		"overwhelmed", "overwhelming", "overloaded", "stressed", "stress", "stressing",
		"pressure", "pressured", "pressuring", "strained", "straining",
		"emotionally drained", "emotionally exhausted", "emotionally depleted",
		"can't cope", "can't handle", "unable to cope", "unable to handle",
		"too much", "too many", "can't take it", "can't deal",
		"no energy", "low energy", "lack energy", "energy depleted", "energy drained",
		"running on empty", "running out of steam", "hitting a wall",
		"can't sleep", "insomnia", "restless", "tossing and turning",
		"wake up tired", "never rested", "no rest",
		"work overload", "too much work", "work stress", "work pressure",
		"deadline pressure", "meeting fatigue", "meeting exhaustion",
	},
	domain.Depersonalization: {
		"cynical", "cynicism", "detached", "detachment", "disconnected", "disconnection",
		"disengaged", "disengagement", "distant", "distance", "withdrawn", "withdrawal",
		"numb", "numbness", "indifferent", "indifference", "apathetic", "apathy",
		"don't care", "don't care anymore", "stopped caring", "lost interest",
		"blame others", "blaming others", "fault of others", "others' fault",
		"people are", "they are", "they don't", "they can't", "they won't",
		"clients are", "patients are", "students are", "customers are",
		"dehumanizing", "treating like numbers", "treating like objects",
		"lost empathy", "no empathy", "can't empathize", "don't empathize",
		"don't feel for", "don't relate to", "can't relate",
		"pointless", "meaningless", "doesn't matter", "doesn't make a difference",
		"waste of time", "waste of effort", "going through motions",
		"just a job", "just work", "it's just work",
		"difficult", "impossible", "hopeless", "useless", "worthless",
		"annoying", "irritating", "frustrating", "infuriating",
	},
	domain.PersonalAccomplishment: {
		"accomplished", "achievement", "achieved", "succeed", "success", "successful",
		"progress", "progressing", "moving forward", "making progress",
		"productive", "productivity", "getting things done", "completed",
		"finished", "done well", "did well", "performed well",
		"competent", "competence", "capable", "capability", "skilled", "skillful",
		"confident", "confidence", "able to", "can do", "good at",
		"effective", "effectiveness", "efficient", "efficiency",
		"making a difference", "making impact", "helping", "helped", "helpful",
		"valuable", "valuable contribution", "contributed", "contribution",
		"meaningful", "meaning", "purpose", "purposeful",
		"learning", "learned", "growing", "growth", "developing", "development",
		"improving", "improvement", "getting better", "better at",
		"mastered", "mastery", "expertise", "expert",
		"satisfied", "satisfaction", "fulfilled", "fulfillment", "proud", "pride",
		"gratifying", "gratification", "rewarding", "reward",
	},
}

var stressTerms = []string{
	"stressed", "stress", "stressing", "stressed out", "under stress",
	"pressure", "pressured", "pressuring", "under pressure",
	"anxious", "anxiety", "worried", "worry", "worrying",
	"tense", "tension", "strained", "straining",
	"overwhelmed", "overwhelming", "overloaded",
	"panic", "panicking", "panicked",
	"rushed", "rushing", "hurried", "hurrying",
	"deadline", "deadlines", "urgent", "urgency",
	"crisis", "crises", "emergency", "emergencies",
}

var cynicalTerms = []string{
	"pointless", "meaningless", "doesn't matter", "doesn't make a difference",
	"waste of time", "waste of effort", "going through motions",
	"just a job", "just work", "it's just work",
	"don't care", "don't care anymore", "stopped caring",
	"lost interest", "no point", "what's the point",
	"cynical", "cynicism", "jaded", "disillusioned",
}

// Emotion cues are plain substring checks, so "no" also fires inside "know".
var (
	negativeCues = []string{"not", "no", "never", "can't", "won't", "don't", "hate", "angry", "frustrated", "sad", "depressed"}
	positiveCues = []string{"good", "great", "excellent", "happy", "pleased", "satisfied", "proud", "accomplished"}
)

const (
	lexiconBaseLength      = 500
	lexiconMaxEEDP         = 15.0
	lexiconMaxPA           = 20.0
	lexiconConfidence      = 0.6
	lexiconWeightEE        = 0.4
	lexiconWeightDP        = 0.3
	lexiconWeightPA        = 0.3
	lexiconStressDivisor   = 10
	lexiconKeptPunctuation = ".,!?;:-'"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)

	typographicReplacer = strings.NewReplacer(
		"‘", "'", "’", "'",
		"“", `"`, "”", `"`,
		"–", "-", "—", "-",
		"…", "...",
	)
)

func compileTerms(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(terms))
	for i, t := range terms {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(t)) + `\b`)
	}
	return out
}

func countMatches(patterns []*regexp.Regexp, text string) int {
	n := 0
	for _, p := range patterns {
		if p.MatchString(text) {
			n++
		}
	}
	return n
}

// Lexicon scores text against the MBI term dictionary without any model.
// It is safe for concurrent use.
type Lexicon struct {
	dimensions map[domain.MBIDimension][]*regexp.Regexp
	stress     []*regexp.Regexp
	cynical    []*regexp.Regexp
}

// NewLexicon compiles the term dictionary.
func NewLexicon() *Lexicon {
	l := &Lexicon{
		dimensions: make(map[domain.MBIDimension][]*regexp.Regexp, len(mbiTerms)),
		stress:     compileTerms(stressTerms),
		cynical:    compileTerms(cynicalTerms),
	}
	for dim, terms := range mbiTerms {
		l.dimensions[dim] = compileTerms(terms)
	}
	return l
}

// CleanText strips emoji and symbols, normalizes typography and collapses whitespace.
// Apostrophes survive so contractions in the dictionary can still match.
func CleanText(text string) string {
	text = norm.NFC.String(text)
	text = typographicReplacer.Replace(text)
	text = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r), r == '_':
			return r
		case unicode.IsSpace(r):
			return r
		case strings.ContainsRune(lexiconKeptPunctuation, r):
			return r
		}
		return -1
	}, text)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// SplitSentences splits cleaned text on runs of terminal punctuation.
func SplitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

func (l *Lexicon) sentenceFeature(sentence string) domain.BurnoutFeature {
	lower := strings.ToLower(sentence)

	stressMatches := float64(countMatches(l.stress, lower))
	stressLevel := stressMatches / max(1, float64(len(l.stress))/lexiconStressDivisor)
	stressLevel = min(1, stressLevel)

	cynical := countMatches(l.cynical, lower) > 0

	neg, pos := 0, 0
	for _, w := range negativeCues {
		if strings.Contains(lower, w) {
			neg++
		}
	}
	for _, w := range positiveCues {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	emotion := domain.EmotionNeutral
	if neg > pos {
		emotion = domain.EmotionNegative
	} else if pos > neg {
		emotion = domain.EmotionPositive
	}

	// A dimension is recorded each time it beats the best count so far, so
	// the list is ordered by increasing strength.
	dims := []domain.MBIDimension{}
	best := 0
	for _, dim := range domain.MBIDimensions {
		if n := countMatches(l.dimensions[dim], lower); n > best {
			best = n
			dims = append(dims, dim)
		}
	}

	return domain.BurnoutFeature{
		EmotionType:     emotion,
		StressLevel:     stressLevel,
		CynicalThoughts: cynical,
		MBIDimension:    dims,
		Confidence:      lexiconConfidence,
	}
}

func (l *Lexicon) dimensionScore(dim domain.MBIDimension, frequency, textLength int) *domain.MBIScore {
	normalized := float64(frequency)
	if textLength > 0 {
		normalized *= float64(lexiconBaseLength) / float64(max(textLength, lexiconBaseLength))
	}

	var score float64
	if dim == domain.PersonalAccomplishment {
		score = max(0, 100-normalized/lexiconMaxPA*100)
	} else {
		score = min(100, normalized/lexiconMaxEEDP*100)
	}
	return &domain.MBIScore{
		Dimension:       dim,
		RawScore:        float64(frequency),
		NormalizedScore: score,
		Frequency:       frequency,
	}
}

// Analyze produces a burnout analysis for text.
func (l *Lexicon) Analyze(text string) domain.BurnoutAnalysis {
	cleaned := CleanText(text)
	sentences := SplitSentences(cleaned)
	textLength := len([]rune(cleaned))

	features := make([]domain.BurnoutFeature, 0, len(sentences))
	counts := make(map[domain.MBIDimension]int, len(domain.MBIDimensions))
	for _, s := range sentences {
		f := l.sentenceFeature(s)
		for _, d := range f.MBIDimension {
			counts[d]++
		}
		features = append(features, f)
	}

	lower := strings.ToLower(cleaned)
	for _, dim := range domain.MBIDimensions {
		counts[dim] += countMatches(l.dimensions[dim], lower)
	}

	ee := l.dimensionScore(domain.EmotionalExhaustion, counts[domain.EmotionalExhaustion], textLength)
	dp := l.dimensionScore(domain.Depersonalization, counts[domain.Depersonalization], textLength)
	pa := l.dimensionScore(domain.PersonalAccomplishment, counts[domain.PersonalAccomplishment], textLength)

	overall := ee.NormalizedScore*lexiconWeightEE + dp.NormalizedScore*lexiconWeightDP + pa.NormalizedScore*lexiconWeightPA
	overall = min(100, max(0, overall))

	return domain.BurnoutAnalysis{
		OverallScore:           &overall,
		EmotionalExhaustion:    ee,
		Depersonalization:      dp,
		PersonalAccomplishment: pa,
		Features:               features,
		TextLength:             textLength,
		SentenceCount:          len(sentences),
		RiskLevel:              domain.RiskLevelFor(overall),
	}
}
