package mapping

import (
	"github.com/samber/lo"

	v1 "github.com/eslsoft/keymantra/api/keymantra/v1"
	"github.com/eslsoft/keymantra/internal/dictation"
)

// ToPbSessionView flattens a controller snapshot. Verdicts are rendered as
// strings and only present after a submission.
func ToPbSessionView(in dictation.View) *v1.SessionView {
	return &v1.SessionView{
		Status:         in.Status.String(),
		Index:          int32(in.Index),
		Total:          int32(in.Total),
		QuestionId:     in.QuestionID,
		SortOrder:      in.SortOrder,
		Title:          in.Title,
		Input:          in.Input,
		Caret:          int32(in.Caret),
		ActiveSlot:     int32(in.ActiveSlot),
		Phase:          in.State.Phase.String(),
		AllCorrect:     in.State.AllCorrect,
		Slots:          lo.Map(in.Slots, func(s dictation.SlotView, _ int) *v1.Slot { return toPbSlot(s) }),
		Extra:          in.Extra,
		AdvancePending: in.AdvancePending,
	}
}

func toPbSlot(in dictation.SlotView) *v1.Slot {
	slot := &v1.Slot{
		Length: int32(in.Length),
		Typed:  in.Typed,
		Active: in.Active,
	}
	if in.Verdict != nil {
		slot.Verdict = in.Verdict.String()
		slot.Distance = int32(in.Distance)
	}
	return slot
}
