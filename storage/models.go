package storage

import "time"

type EventType string

const (
	EventPosterPresentation EventType = "poster-presentation"
	EventPaperPresentation  EventType = "paper-presentation"
	EventStartupExpo        EventType = "startup-expo"
)

// ValidEventTypes maps every competition track to its display label.
var ValidEventTypes = map[EventType]string{
	EventPosterPresentation: "Poster Presentation",
	EventPaperPresentation:  "Paper Presentation",
	EventStartupExpo:        "Startup Expo",
}

// EventTypes lists the tracks in a fixed order.
var EventTypes = []EventType{EventPosterPresentation, EventPaperPresentation, EventStartupExpo}

func (e EventType) Valid() bool {
	_, ok := ValidEventTypes[e]
	return ok
}

type Member struct {
	Name  string `dynamodbav:"Name" json:"name"`
	Email string `dynamodbav:"Email" json:"email"`
	Role  string `dynamodbav:"Role,omitempty" json:"role,omitempty"`
}

type Team struct {
	ID                string    `dynamodbav:"PK" gorm:"primaryKey;size:32"`
	Name              string    `dynamodbav:"Name" gorm:"uniqueIndex;size:191;not null"`
	EventType         EventType `dynamodbav:"EventType" gorm:"index;size:64;not null"`
	Members           []Member  `dynamodbav:"Members" gorm:"type:text;serializer:json"`
	TotalMembers      int       `dynamodbav:"TotalMembers"`
	Description       string    `dynamodbav:"Description"`
	SelectedForRound2 bool      `dynamodbav:"SelectedForRound2" gorm:"not null;default:false"`
	CreatedAt         time.Time `dynamodbav:"CreatedAt"`
	UpdatedAt         time.Time `dynamodbav:"UpdatedAt"`
}

// Normalize keeps TotalMembers in line with the member list. Call before every write.
func (t *Team) Normalize() {
	if t.Members == nil {
		t.Members = []Member{}
	}
	t.TotalMembers = len(t.Members)
}

type Judge struct {
	ID            string    `dynamodbav:"PK" gorm:"primaryKey;size:32"`
	Name          string    `dynamodbav:"Name" gorm:"not null"`
	Email         string    `dynamodbav:"Email" gorm:"uniqueIndex;size:191;not null"`
	PasswordHash  string    `dynamodbav:"PasswordHash" gorm:"not null"`
	AssignedEvent EventType `dynamodbav:"AssignedEvent" gorm:"size:64;not null"`
	IsActive      bool      `dynamodbav:"IsActive" gorm:"not null"`
	CreatedAt     time.Time `dynamodbav:"CreatedAt"`
	UpdatedAt     time.Time `dynamodbav:"UpdatedAt"`
}

type Admin struct {
	ID           string    `dynamodbav:"PK" gorm:"primaryKey;size:32"`
	Name         string    `dynamodbav:"Name" gorm:"not null"`
	Email        string    `dynamodbav:"Email" gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string    `dynamodbav:"PasswordHash" gorm:"not null"`
	IsSuper      bool      `dynamodbav:"IsSuper" gorm:"not null;default:false"`
	CreatedAt    time.Time `dynamodbav:"CreatedAt"`
}

type QuestionScore struct {
	QuestionNumber int `dynamodbav:"QuestionNumber" json:"questionNumber"`
	Score          int `dynamodbav:"Score" json:"score"`
}

type Round struct {
	RoundNumber int             `dynamodbav:"RoundNumber" json:"roundNumber"`
	Questions   []QuestionScore `dynamodbav:"Questions" json:"questions"`
	TotalScore  int             `dynamodbav:"TotalScore" json:"totalScore"`
}

// Evaluation is keyed by team (PK) and judge (SK) so a judge holds at most one per team.
type Evaluation struct {
	TeamID      string    `dynamodbav:"PK" gorm:"uniqueIndex:idx_evaluation_team_judge;size:32;not null"`
	JudgeID     string    `dynamodbav:"SK" gorm:"uniqueIndex:idx_evaluation_team_judge;size:32;not null;index"`
	ID          string    `dynamodbav:"ID" gorm:"primaryKey;size:32"`
	EventType   EventType `dynamodbav:"EventType" gorm:"size:64;not null"`
	Rounds      []Round   `dynamodbav:"Rounds" gorm:"type:text;serializer:json"`
	Remarks     string    `dynamodbav:"Remarks"`
	TotalScore  int       `dynamodbav:"TotalScore"`
	EvaluatedAt time.Time `dynamodbav:"EvaluatedAt"`
	CreatedAt   time.Time `dynamodbav:"CreatedAt"`
	UpdatedAt   time.Time `dynamodbav:"UpdatedAt"`
}

// Round returns the round with the given number, or nil.
func (e *Evaluation) Round(number int) *Round {
	for i := range e.Rounds {
		if e.Rounds[i].RoundNumber == number {
			return &e.Rounds[i]
		}
	}
	return nil
}
