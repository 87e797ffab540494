package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/sirupsen/logrus"
)

type Worker struct {
	id         int
	logger     *logrus.Entry
	poolWorker *PoolWorker
}

type ProcessJobOutput struct {
	err               error
	skip              bool
	framesNotFound    bool
	outputAlreadyUsed bool
}

func NewWorker(id int, logger *logrus.Entry, poolWorker *PoolWorker) *Worker {
	return &Worker{
		id:         id,
		logger:     logger,
		poolWorker: poolWorker,
	}
}

func (w *Worker) start() {
	for job := range w.poolWorker.workChannel {
		w.poolWorker.waitGroup.Add(1)
		err := w.doWork(&job)
		if w.poolWorker.ctx.Err() != nil {
			w.logger.Debug("Ctx error is: ", w.poolWorker.ctx.Err())
			if w.poolWorker.ctx.Err() == context.Canceled {
				w.logger.Debug("Ctx was canceled")
				w.poolWorker.waitGroup.Done()
				return
			}
		}

		if err != nil {
			w.logger.WithFields(StructFields(job)).Debug("Job finished with error: ", err)
		}

		w.poolWorker.waitGroup.Done()
	}
}

func (w *Worker) doWork(job *Job) error {
	processJobOutput := w.processJob(job)
	if w.poolWorker.ctx.Err() != nil {
		// The context is cancelled, just return
		// it's handled in start
		return nil
	}

	if processJobOutput.err != nil {
		w.handleProcessJobError(job, &processJobOutput)
		// Error was handled already
		return nil
	}

	if processJobOutput.framesNotFound {
		w.logger.Error("Frames to process weren't found: ", job.FramesDir)
		notFoundErr := errors.New("source frames not found")
		w.failJob(job, notFoundErr)
		return notFoundErr
	}

	if processJobOutput.outputAlreadyUsed {
		w.logger.Warn("Output directory already has frames, skipping job")
	}

	err := sqlite.MarkJobAsDone(job)
	if err != nil {
		w.logger.Error("Failed to mark job as done: ", err)
		return err
	}

	if *w.poolWorker.config.DeleteInputFramesWhenFinished && !processJobOutput.skip {
		ok, err := IsSamePath(job.FramesDir, job.OutputDir)
		if err != nil {
			w.logger.Error("Error while looking up same path: ", err)
			return err
		}

		if !ok {
			if err := os.RemoveAll(job.FramesDir); err != nil {
				w.logger.WithFields(StructFields(job)).Error("Failed to delete input frames: ", err)
				return err
			}
			w.logger.WithField("dir", job.FramesDir).Info("Deleted input frames")
		} else {
			w.logger.WithFields(StructFields(job)).Warn("Detected same path with delete input option, not deleting anything!")
		}
	}

	w.logger.Info("Finished processing job")
	return nil
}

func (w *Worker) handleProcessJobError(job *Job, processJobOutput *ProcessJobOutput) {
	w.logger.WithFields(StructFields(job)).Error("Error processing job: ", processJobOutput.err)

	retries, err := sqlite.GetJobRetries(job)
	if err != nil {
		w.logger.WithFields(StructFields(job)).Error("Failed to get retries: ", err)
		return
	}

	if retries >= retryLimit {
		w.failJob(job, processJobOutput.err)
		return
	}

	retries++
	err = sqlite.UpdateJobRetries(job, retries)
	if err != nil {
		w.logger.WithFields(StructFields(job)).Error("Failed to update job retries: ", err)
		return
	}

	w.poolWorker.queue.Enqueue(*job)
	w.logger.WithFields(StructFields(job)).Info("Requeue job (back of the queue and retrying)")
}

func (w *Worker) failJob(job *Job, failError error) {
	w.logger.WithFields(StructFields(job)).Info("Job failed, removing it from queue")
	if err := sqlite.FailJob(job, failError.Error()); err != nil {
		w.logger.WithFields(StructFields(job)).Error("Failed to fail the job: ", err)
	}
}

// processJob doubles the frame rate of a directory of frames: every
// other source frame is dropped and re-synthesized from its two
// neighbors, so the output has the same count with half the frames
// replaced by interpolated ones.
func (w *Worker) processJob(job *Job) ProcessJobOutput {
	w.logger.WithFields(StructFields(job)).Info("Processing job")

	dirExist, err := FileExist(job.FramesDir)
	if err != nil {
		return ProcessJobOutput{err: err}
	}

	if !dirExist {
		return ProcessJobOutput{framesNotFound: true}
	}

	frames, err := ListFrames(job.FramesDir, w.poolWorker.config.FramePattern)
	if err != nil {
		return ProcessJobOutput{err: err}
	}

	if len(frames) < 3 {
		return ProcessJobOutput{err: fmt.Errorf("need at least 3 frames, found %d", len(frames))}
	}

	// Skipping alternate frames, which will be interpolated.
	kept := KeepAlternate(frames)
	w.logger.Info("Frame count: ", len(frames))
	w.logger.Info("Retained frame count: ", len(kept))

	outputUsed, err := w.prepareOutputDir(job.OutputDir)
	if err != nil {
		return ProcessJobOutput{err: err}
	}
	if outputUsed {
		return ProcessJobOutput{skip: true, outputAlreadyUsed: true}
	}

	totalPairs := len(kept) - 1
	outIndex := 0
	for i := 0; i < totalPairs; i++ {
		if w.poolWorker.ctx.Err() != nil {
			return ProcessJobOutput{}
		}

		prev, err := LoadGrayFrame(kept[i])
		if err != nil {
			return ProcessJobOutput{err: err}
		}

		curr, err := LoadGrayFrame(kept[i+1])
		if err != nil {
			return ProcessJobOutput{err: err}
		}

		start := time.Now()
		mid, err := w.poolWorker.engine.Interpolate(prev, curr)
		if err != nil {
			return ProcessJobOutput{err: err}
		}
		elapsed := time.Since(start)

		if err := w.poolWorker.report.Write(elapsed); err != nil {
			return ProcessJobOutput{err: err}
		}

		w.poolWorker.hub.BroadcastProgress(WsFrameProgress{
			WsBaseMessage: WsBaseMessage{Type: "frameProgress"},
			WorkerID:      w.id,
			JobID:         job.ID,
			Pair:          i + 1,
			TotalPairs:    totalPairs,
			ElapsedMs:     elapsed.Milliseconds(),
		})

		// Source frames are copied through untouched; only the
		// synthesized midpoints go through the encoder.
		if err := CopyFile(kept[i], outFramePath(job.OutputDir, outIndex)); err != nil {
			return ProcessJobOutput{err: err}
		}
		outIndex++

		if err := SaveGrayFrame(outFramePath(job.OutputDir, outIndex), mid); err != nil {
			return ProcessJobOutput{err: err}
		}
		outIndex++

		if i == totalPairs-1 {
			if err := CopyFile(kept[i+1], outFramePath(job.OutputDir, outIndex)); err != nil {
				return ProcessJobOutput{err: err}
			}
			outIndex++
		}

		w.logger.Debugf("Interpolated pair %d/%d in %d ms", i+1, totalPairs, elapsed.Milliseconds())
	}

	return ProcessJobOutput{}
}

// prepareOutputDir creates the output directory, reporting whether it
// already holds frames from an earlier run.
func (w *Worker) prepareOutputDir(dir string) (bool, error) {
	exist, err := FileExist(dir)
	if err != nil {
		return false, err
	}

	if exist {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return false, err
		}

		if len(entries) > 0 {
			if !*w.poolWorker.config.DeleteOutputIfAlreadyExist {
				return true, nil
			}

			w.logger.Debug("Output already exists, deleting frames")
			if err := os.RemoveAll(dir); err != nil {
				return false, err
			}
		}
	}

	return false, os.MkdirAll(dir, os.ModePerm)
}

func outFramePath(dir string, index int) string {
	return path.Join(dir, fmt.Sprintf("frame_%06d.png", index))
}
