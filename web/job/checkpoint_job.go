// Package job holds the background maintenance jobs run by the cron
// scheduler of the web server.
package job

import (
	"github.com/mhsanaei/memo/database"
	"github.com/mhsanaei/memo/logger"
	"github.com/mhsanaei/memo/util/common"
)

// CheckpointJob folds the SQLite write-ahead log back into the database
// file so it does not grow without bound.
type CheckpointJob struct {
	checkpointer database.Checkpointer
}

func NewCheckpointJob(checkpointer database.Checkpointer) *CheckpointJob {
	return &CheckpointJob{checkpointer: checkpointer}
}

func (j *CheckpointJob) Run() {
	defer common.Recover("checkpoint job")

	if err := j.checkpointer.Checkpoint(); err != nil {
		logger.Warning("database checkpoint failed:", err)
		return
	}
	logger.Debug("database checkpoint done")
}
