package domain

// LoggedAnswer is a single term-level response recorded during a session.
type LoggedAnswer struct {
	LogID      int    `json:"logID"`
	QuestionID int    `json:"questionID"`
	TermID     int    `json:"termID"`
	SessionID  int    `json:"sessionID"`
	Front      string `json:"front"`
	Correct    bool   `json:"correct"`
	Mode       string `json:"mode,omitempty"`
}

// MentorResponse is a free-text answer a student gave to a mentor question
// during a session.
type MentorResponse struct {
	ResponseID int    `json:"responseID"`
	SessionID  int    `json:"sessionID"`
	QuestionID int    `json:"questionID"`
	Response   string `json:"response"`
}

// MentorQuestion is the question a set of mentor responses answered.
type MentorQuestion struct {
	QuestionID   int    `json:"questionID"`
	Type         string `json:"type,omitempty"`
	QuestionText string `json:"questionText"`
}
