package rask

// MediaKind is the kind of an uploaded media file.
type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindAudio MediaKind = "audio"
	MediaKindImage MediaKind = "image"
)

// MediaStatus is the processing state of a media file.
type MediaStatus string

const (
	MediaStatusProcessing MediaStatus = "processing"
	MediaStatusReady      MediaStatus = "ready"
	MediaStatusFailed     MediaStatus = "failed"
)

// ProjectSourceType tells where a project's video came from.
type ProjectSourceType string

const (
	ProjectSourceYouTube ProjectSourceType = "youtube"
	ProjectSourceGDrive  ProjectSourceType = "gdrive"
	ProjectSourceVimeo   ProjectSourceType = "vimeo"
	ProjectSourceS3      ProjectSourceType = "s3"
	ProjectSourceAny     ProjectSourceType = "any"
	ProjectSourceLocal   ProjectSourceType = "local"
)

// ProjectStatus is the pipeline stage of a project.
type ProjectStatus string

const (
	ProjectStatusCreated                   ProjectStatus = "created"
	ProjectStatusUploading                 ProjectStatus = "uploading"
	ProjectStatusUploaded                  ProjectStatus = "uploaded"
	ProjectStatusUploadFailed              ProjectStatus = "upload_failed"
	ProjectStatusTranscriptionStarted      ProjectStatus = "transcription_started"
	ProjectStatusTranscriptionDone         ProjectStatus = "transcription_done"
	ProjectStatusTranscriptionFailed       ProjectStatus = "transcription_failed"
	ProjectStatusTranscribeSegmentsStarted ProjectStatus = "transcribe_segments_started"
	ProjectStatusTranscribeSegmentsDone    ProjectStatus = "transcribe_segments_done"
	ProjectStatusTranscribeSegmentsFailed  ProjectStatus = "transcribe_segments_failed"
	ProjectStatusSeparateBackgroundStarted ProjectStatus = "separate_background_started"
	ProjectStatusSeparateBackgroundDone    ProjectStatus = "separate_background_done"
	ProjectStatusSeparateBackgroundFailed  ProjectStatus = "separate_background_failed"
	ProjectStatusDetermineSpeakersStarted  ProjectStatus = "determine_speakers_started"
	ProjectStatusDetermineSpeakersDone     ProjectStatus = "determine_speakers_done"
	ProjectStatusDetermineSpeakersFailed   ProjectStatus = "determine_speakers_failed"
	ProjectStatusVoiceSuggestStarted       ProjectStatus = "voice_suggest_started"
	ProjectStatusVoiceSuggestDone          ProjectStatus = "voice_suggest_done"
	ProjectStatusVoiceSuggestFailed        ProjectStatus = "voice_suggest_failed"
	ProjectStatusTranslationStarted        ProjectStatus = "translation_started"
	ProjectStatusTranslationDone           ProjectStatus = "translation_done"
	ProjectStatusTranslationFailed         ProjectStatus = "translation_failed"
	ProjectStatusVoiceUpdateStarted        ProjectStatus = "voice_update_started"
	ProjectStatusVoiceUpdateDone           ProjectStatus = "voice_update_done"
	ProjectStatusVoiceUpdateFailed         ProjectStatus = "voice_update_failed"
	ProjectStatusTranscriptEdited          ProjectStatus = "transcript_edited"
	ProjectStatusVoiceEdited               ProjectStatus = "voice_edited"
	ProjectStatusVoiceoverStarted          ProjectStatus = "voiceover_started"
	ProjectStatusVoiceoverDone             ProjectStatus = "voiceover_done"
	ProjectStatusVoiceoverFailed           ProjectStatus = "voiceover_failed"
	ProjectStatusMergingStarted            ProjectStatus = "merging_started"
	ProjectStatusMergingDone               ProjectStatus = "merging_done"
	ProjectStatusMergingFailed             ProjectStatus = "merging_failed"
	ProjectStatusFailed                    ProjectStatus = "failed"
	ProjectStatusNoAudio                   ProjectStatus = "no_audio"
	ProjectStatusNoWords                   ProjectStatus = "no_words"
	ProjectStatusForbiddenLink             ProjectStatus = "forbidden_link"
)

// Failed reports whether the pipeline stopped on an error.
func (s ProjectStatus) Failed() bool {
	switch s {
	case ProjectStatusUploadFailed,
		ProjectStatusTranscriptionFailed,
		ProjectStatusTranscribeSegmentsFailed,
		ProjectStatusSeparateBackgroundFailed,
		ProjectStatusDetermineSpeakersFailed,
		ProjectStatusVoiceSuggestFailed,
		ProjectStatusTranslationFailed,
		ProjectStatusVoiceUpdateFailed,
		ProjectStatusVoiceoverFailed,
		ProjectStatusMergingFailed,
		ProjectStatusFailed,
		ProjectStatusNoAudio,
		ProjectStatusNoWords,
		ProjectStatusForbiddenLink:
		return true
	}
	return false
}

// Terminal reports whether the pipeline will not advance on its own: the
// dubbed video is merged, or a stage failed.
func (s ProjectStatus) Terminal() bool {
	return s == ProjectStatusMergingDone || s.Failed()
}

// SegmentStatus is the processing state of a transcription segment.
type SegmentStatus string

const (
	SegmentStatusProcessing SegmentStatus = "processing"
	SegmentStatusUpdated    SegmentStatus = "updated"
	SegmentStatusDone       SegmentStatus = "done"
	SegmentStatusError      SegmentStatus = "error"
)

// LipsyncStatus is the state of a lipsync or face check task.
type LipsyncStatus string

const (
	LipsyncStatusStarted  LipsyncStatus = "started"
	LipsyncStatusDone     LipsyncStatus = "done"
	LipsyncStatusFailed   LipsyncStatus = "failed"
	LipsyncStatusOutdated LipsyncStatus = "outdated"
)
