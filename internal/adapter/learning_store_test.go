package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursepass/internal/core/model"
)

func TestLecture_LazyBundleAndIdempotentReads(t *testing.T) {
	s := NewLearningStore()

	b1 := s.Lecture("lec-1")
	b2 := s.Lecture("lec-1")
	assert.Equal(t, b1, b2)

	// copies must be independently owned
	b1.Notes[0].Content = "mutated"
	b1.Progress.Percent = 1
	b1.Siblings[0].Title = "mutated"

	b3 := s.Lecture("lec-1")
	assert.Equal(t, b2, b3)
}

func TestLecture_SeedShape(t *testing.T) {
	s := NewLearningStore()

	b := s.Lecture("lec-9")
	assert.Equal(t, "lec-9", b.Lecture.ID)
	assert.True(t, b.HasAccess)
	require.Len(t, b.Notes, 1)
	assert.Equal(t, model.NoteAutoSummary, b.Notes[0].NoteType)
	require.NotNil(t, b.Progress)
	assert.Equal(t, float64(35), b.Progress.Percent)
	assert.Len(t, b.Siblings, 3)
}

func TestReplaceProgress_WholeRecord(t *testing.T) {
	s := NewLearningStore()

	got := s.ReplaceProgress(model.LectureProgress{LectureID: "lec-1", SecondsWatched: 900, Percent: 80})
	assert.Equal(t, 900, got.SecondsWatched)

	b := s.Lecture("lec-1")
	require.NotNil(t, b.Progress)
	assert.Equal(t, float64(80), b.Progress.Percent)
	assert.Equal(t, 900, b.Progress.SecondsWatched)
}

func TestAppendNote_PrependsNewestFirst(t *testing.T) {
	s := NewLearningStore()

	first := s.AppendNote(model.NotePayload{LectureID: "lec-1", NoteType: model.NoteUserMemo, Content: "첫 메모"})
	second := s.AppendNote(model.NotePayload{LectureID: "lec-1", NoteType: model.NoteUserMemo, Content: "둘째 메모"})

	b := s.Lecture("lec-1")
	require.Len(t, b.Notes, 3) // seeded summary + two memos
	assert.Equal(t, second.NoteID, b.Notes[0].NoteID)
	assert.Equal(t, first.NoteID, b.Notes[1].NoteID)
}

func TestNoteIDs_StrictlyIncreasingAcrossLectures(t *testing.T) {
	s := NewLearningStore()

	seeded := s.Lecture("lec-a").Notes[0]
	n1 := s.AppendNote(model.NotePayload{LectureID: "lec-a", NoteType: model.NoteUserMemo, Content: "a"})
	n2 := s.AppendNote(model.NotePayload{LectureID: "lec-b", NoteType: model.NoteUserMemo, Content: "b"})
	n3 := s.AppendNote(model.NotePayload{LectureID: "lec-a", NoteType: model.NoteUserMemo, Content: "c"})

	assert.Less(t, seeded.NoteID, n1.NoteID)
	assert.Less(t, n1.NoteID, n2.NoteID)
	assert.Less(t, n2.NoteID, n3.NoteID)
}

func TestAppendQuestion_RecordsPendingAnswer(t *testing.T) {
	s := NewLearningStore()

	note := s.AppendQuestion("lec-1", "진도표는 어디서 보나요?")
	assert.Equal(t, model.NoteQAAnswer, note.NoteType)
	require.NotNil(t, note.Question)
	assert.Equal(t, "진도표는 어디서 보나요?", *note.Question)
	assert.NotEmpty(t, note.Content)

	b := s.Lecture("lec-1")
	assert.Equal(t, note.NoteID, b.Notes[0].NoteID)
}
