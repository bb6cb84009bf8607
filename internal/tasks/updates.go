package tasks

import (
	"fmt"

	"github.com/groove-cli/groove/internal/models"
)

// Phase identifies the stage of a sync run a progress update belongs to.
type Phase string

const (
	PhaseParse    Phase = "parse"
	PhaseSearch   Phase = "search"
	PhaseResolve  Phase = "resolve"
	PhaseAdd      Phase = "add"
	PhaseComplete Phase = "complete"
)

// ProgressUpdate is a lightweight status event emitted during long-running
// operations. Current/Total are zero for phases without item counts.
type ProgressUpdate struct {
	Phase   Phase
	Current int
	Total   int
	Message string
}

func (u ProgressUpdate) String() string {
	if u.Total > 0 {
		return fmt.Sprintf("[%s] (%d/%d) %s", u.Phase, u.Current, u.Total, u.Message)
	}
	return fmt.Sprintf("[%s] %s", u.Phase, u.Message)
}

func searchSongUpdate(current, total int, song models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseSearch,
		Current: current,
		Total:   total,
		Message: song.String(),
	}
}

// sendProgress delivers an update without blocking. A nil channel or a full
// buffer drops the update; progress reporting never stalls the operation.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
