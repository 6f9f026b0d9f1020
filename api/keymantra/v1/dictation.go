package keymantrav1

type StartSessionRequest struct {
	CourseId int64 `json:"courseId"`
}

type SessionRequest struct {
	SessionId string `json:"sessionId"`
}

type InputRequest struct {
	SessionId string `json:"sessionId"`
	Text      string `json:"text"`
	// Caret is measured in characters (Unicode code points).
	Caret int32 `json:"caret"`
}

type MoveCaretRequest struct {
	SessionId string `json:"sessionId"`
	Caret     int32  `json:"caret"`
}

type SubmitRequest struct {
	SessionId string `json:"sessionId"`
	// Composing marks an Enter that commits an IME composition.
	Composing bool `json:"composing,omitempty"`
}

type Slot struct {
	Length  int32  `json:"length"`
	Typed   string `json:"typed"`
	Active  bool   `json:"active,omitempty"`
	Verdict string `json:"verdict,omitempty"`
	// Distance is set for incorrect words only.
	Distance int32 `json:"distance,omitempty"`
}

type SessionView struct {
	Status         string   `json:"status"`
	Index          int32    `json:"index"`
	Total          int32    `json:"total"`
	QuestionId     int64    `json:"questionId,omitempty"`
	SortOrder      int32    `json:"sortOrder,omitempty"`
	Title          string   `json:"title,omitempty"`
	Input          string   `json:"input"`
	Caret          int32    `json:"caret"`
	ActiveSlot     int32    `json:"activeSlot"`
	Phase          string   `json:"phase"`
	AllCorrect     bool     `json:"allCorrect,omitempty"`
	Slots          []*Slot  `json:"slots,omitempty"`
	Extra          []string `json:"extra,omitempty"`
	AdvancePending bool     `json:"advancePending,omitempty"`
}

type SessionResponse struct {
	SessionId string       `json:"sessionId"`
	CourseId  int64        `json:"courseId"`
	View      *SessionView `json:"view"`
}
