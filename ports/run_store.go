package ports

import (
	"context"
	"time"

	"anonsurvey/domain/core"
)

// RunRecord is one archived analysis run. The payload is the serialized
// analysis result; the archive never stores raw identifiers.
type RunRecord struct {
	ID        core.RunID `db:"id" json:"id"`
	Folder    string     `db:"folder" json:"folder"`
	PreFile   string     `db:"pre_file" json:"pre_file"`
	PostFile  string     `db:"post_file" json:"post_file"`
	Payload   []byte     `db:"payload" json:"payload"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// RunStore archives completed analysis runs.
type RunStore interface {
	SaveRun(ctx context.Context, record RunRecord) error
	GetRun(ctx context.Context, id core.RunID) (*RunRecord, error)
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
}
