package domain

import "time"

const (
	// QuizQuestionCount is the length of the MBI questionnaire.
	QuizQuestionCount = 22
	// QuizMaxAnswer is the highest value a single answer may take.
	QuizMaxAnswer = 3
)

// QuizAnswerLabels maps answer values to what the respondent picked.
var QuizAnswerLabels = [QuizMaxAnswer + 1]string{
	"Strongly Agree",
	"Agree",
	"Disagree",
	"Strongly Disagree",
}

// QuizQuestions is the Maslach Burnout Inventory questionnaire, in order.
var QuizQuestions = [QuizQuestionCount]string{
	"I feel emotionally drained by my work.",
	"Working with people all day long requires a great deal of effort.",
	"I feel like my work is breaking me down.",
	"I feel frustrated by my work.",
	"I feel I work too hard at my job.",
	"It stresses me too much to work in direct contact with people.",
	"I feel like I'm at the end of my rope.",
	"I feel I look after certain patients/clients impersonally, as if they are objects.",
	"I feel tired when I get up in the morning and have to face another day at work.",
	"I have the impression that my patients/clients make me responsible for some of their problems.",
	"I am at the end of my patience at the end of my work day.",
	"I really don't care about what happens to some of my patients/clients.",
	"I have become more insensitive to people since I've been working.",
	"I'm afraid that this job is making me uncaring.",
	"I accomplish many worthwhile things in this job.",
	"I feel full of energy.",
	"I am easily able to understand what my patients/clients feel.",
	"I look after my patients'/clients' problems very effectively.",
	"In my work, I handle emotional problems very calmly.",
	"Through my work, I feel that I have a positive influence on people.",
	"I am easily able to create a relaxed atmosphere with my patients/clients.",
	"I feel refreshed when I have been close to my patients/clients at work.",
}

// QuizResult is one completed questionnaire. Responses maps question index to answer.
// Processed is flipped by the downstream scoring engine.
type QuizResult struct {
	QuizID      string      `json:"id"`
	UserID      string      `json:"-"`
	Responses   map[int]int `json:"responses"`
	CompletedAt time.Time   `json:"completedAt"`
	Processed   bool        `json:"processed"`
}

// QuizStat is one point on the stress-over-time chart.
type QuizStat struct {
	QuizID      string    `json:"id"`
	Date        string    `json:"date"`
	CompletedAt time.Time `json:"completedAt"`
	Score       int       `json:"score"`
}
