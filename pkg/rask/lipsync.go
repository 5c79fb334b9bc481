package rask

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CheckFaceTask is the state of a face check.
type CheckFaceTask struct {
	CheckFaceTaskStatus LipsyncStatus `json:"check_face_task_status,omitempty"`
}

// LipsyncTaskData configures a lipsync run.
type LipsyncTaskData struct {
	IsMultipleSpeakers *bool `json:"is_multiple_speakers,omitempty"`
	IsFreeLipsync      *bool `json:"is_free_lipsync,omitempty"`
}

// LipsyncTask is the state of a queued lipsync run.
type LipsyncTask struct {
	TasksInLipsyncQueue *int          `json:"tasks_in_lipsync_queue,omitempty"`
	LipsyncTaskStatus   LipsyncStatus `json:"lipsync_task_status,omitempty"`
}

// LipsyncInfo summarizes lipsync for a project.
type LipsyncInfo struct {
	CheckFaceTaskStatus LipsyncStatus `json:"check_face_task_status,omitempty"`
	TasksInLipsyncQueue *int          `json:"tasks_in_lipsync_queue,omitempty"`
	LipsyncResultPath   string        `json:"lipsync_result_path,omitempty"`
	LipsyncTaskStatus   LipsyncStatus `json:"lipsync_task_status,omitempty"`
	VideoHasFace        *bool         `json:"video_has_face,omitempty"`
	LipsyncTaskProgress *int          `json:"lipsync_task_progress,omitempty"`
}

// RunCheckFaceTask checks whether the project's video shows a face.
func (c *Client) RunCheckFaceTask(ctx context.Context, projectID uuid.UUID) (*CheckFaceTask, error) {
	return call[CheckFaceTask](ctx, c, request{method: http.MethodPut, path: projectPath(projectID) + "/check_face"})
}

// RunLipsyncTask queues a lipsync run for the project.
func (c *Client) RunLipsyncTask(ctx context.Context, projectID uuid.UUID, data LipsyncTaskData) (*LipsyncTask, error) {
	return call[LipsyncTask](ctx, c, request{
		method: http.MethodPut,
		path:   projectPath(projectID) + "/lipsync",
		body:   data,
	})
}

// GetLipsyncInfo returns the lipsync state of the project.
func (c *Client) GetLipsyncInfo(ctx context.Context, projectID uuid.UUID) (*LipsyncInfo, error) {
	return call[LipsyncInfo](ctx, c, request{method: http.MethodGet, path: projectPath(projectID) + "/lipsync"})
}
