package adapter

import (
	"sync"
	"time"

	"coursepass/internal/core/model"
	"coursepass/pkg/util"
)

// LearningStore holds one session bundle per lecture, materialized lazily on
// first read. Progress writes replace the whole record; notes prepend. Note
// ids come from a single counter shared across all lectures, so they are
// strictly increasing for the store's lifetime. All keyed access holds the
// store mutex: concurrent writers to the same lecture serialize and the last
// whole record wins, never an interleaved partial write.
type LearningStore struct {
	mu      sync.Mutex
	bundles map[string]*model.LearningLectureData
	noteSeq int64
	now     func() time.Time
}

func NewLearningStore() *LearningStore {
	return &LearningStore{
		bundles: make(map[string]*model.LearningLectureData),
		noteSeq: 1000,
		now:     time.Now,
	}
}

// Lecture returns an independently-owned copy of the lecture's bundle,
// creating the canned base bundle on first access.
func (s *LearningStore) Lecture(lectureID string) model.LearningLectureData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyBundle(*s.bundle(lectureID))
}

// ReplaceProgress overwrites the lecture's progress record as a whole.
func (s *LearningStore) ReplaceProgress(progress model.LectureProgress) model.LectureProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.bundle(progress.LectureID)
	p := progress
	b.Progress = &p
	return progress
}

// AppendNote creates an immutable note and prepends it to the lecture's
// note list (newest first).
func (s *LearningStore) AppendNote(payload model.NotePayload) model.NoteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.bundle(payload.LectureID)
	note := model.NoteEntry{
		NoteID:    s.nextNoteID(),
		LectureID: payload.LectureID,
		NoteType:  payload.NoteType,
		Question:  clonePtr(payload.Question),
		Content:   payload.Content,
		CreatedAt: s.now(),
	}
	b.Notes = append([]model.NoteEntry{note}, b.Notes...)
	return copyNote(note)
}

// AppendQuestion records a question as a qa_answer note with a canned
// answer-pending body.
func (s *LearningStore) AppendQuestion(lectureID, question string) model.NoteEntry {
	return s.AppendNote(model.NotePayload{
		LectureID: lectureID,
		NoteType:  model.NoteQAAnswer,
		Question:  &question,
		Content:   "답변 준비 중입니다. 담당 튜터가 곧 답변을 등록할 예정입니다.",
	})
}

// bundle returns the live record for lectureID; callers must hold s.mu.
func (s *LearningStore) bundle(lectureID string) *model.LearningLectureData {
	if b, ok := s.bundles[lectureID]; ok {
		return b
	}
	b := s.seedBundle(lectureID)
	s.bundles[lectureID] = b
	return b
}

func (s *LearningStore) seedBundle(lectureID string) *model.LearningLectureData {
	const courseID = "course-ai-accelerator"
	return &model.LearningLectureData{
		Lecture: model.LectureDetail{
			LectureSummary: model.LectureSummary{
				ID:               lectureID,
				Title:            "오리엔테이션 및 합격 전략",
				DurationMinutes:  util.GetPtr(18),
				PreviewAvailable: true,
			},
			VideoURL:    "https://storage.googleapis.com/coursepass/videos/sample.mp4",
			Description: util.GetPtr("강의 흐름과 합격 전략을 소개합니다."),
		},
		Course: model.CourseRef{
			ID:    courseID,
			Title: "AI 합격 마스터: 산업기사 단기 완성",
		},
		Notes: []model.NoteEntry{
			{
				NoteID:    s.nextNoteID(),
				LectureID: lectureID,
				NoteType:  model.NoteAutoSummary,
				Content:   "핵심 키워드와 학습 순서를 정리한 자동 요약입니다.",
				CreatedAt: s.now(),
			},
		},
		Progress: &model.LectureProgress{
			LectureID:      lectureID,
			SecondsWatched: 240,
			Percent:        35,
		},
		Siblings: []model.LectureSummary{
			{ID: lectureID, Title: "오리엔테이션 및 합격 전략", DurationMinutes: util.GetPtr(18), PreviewAvailable: true},
			{ID: courseID + "-lecture-2", Title: "필수 개념 정리 1", DurationMinutes: util.GetPtr(32)},
			{ID: courseID + "-lecture-3", Title: "실전 CBT 모의고사 해설", DurationMinutes: util.GetPtr(45)},
		},
		HasAccess: true,
	}
}

func (s *LearningStore) nextNoteID() int64 {
	s.noteSeq++
	return s.noteSeq
}

func copyNote(n model.NoteEntry) model.NoteEntry {
	n.Question = clonePtr(n.Question)
	return n
}

func copyBundle(b model.LearningLectureData) model.LearningLectureData {
	b.Lecture.DurationMinutes = clonePtr(b.Lecture.DurationMinutes)
	b.Lecture.Description = clonePtr(b.Lecture.Description)
	notes := make([]model.NoteEntry, len(b.Notes))
	for i, n := range b.Notes {
		notes[i] = copyNote(n)
	}
	b.Notes = notes
	b.Progress = clonePtr(b.Progress)
	b.Siblings = copyLectures(b.Siblings)
	return b
}
