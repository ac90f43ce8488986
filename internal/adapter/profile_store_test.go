package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursepass/internal/core/model"
	"coursepass/pkg/util"
)

func TestMyPage_Seed(t *testing.T) {
	s := NewProfileStore()

	page := s.MyPage()
	assert.Equal(t, "mock-user-1", page.Profile.ID)
	assert.Equal(t, "합격러", page.Profile.Nickname)
	require.Len(t, page.Courses, 2)
	assert.Equal(t, float64(72), page.Courses[0].ProgressPercent)
}

func TestUpdateProfile_NilFieldsUntouched(t *testing.T) {
	s := NewProfileStore()

	got := s.UpdateProfile(model.ProfileUpdate{Nickname: util.GetPtr("새이름")})
	assert.Equal(t, "새이름", got.Nickname)
	require.NotNil(t, got.Address)
	assert.Equal(t, "서울시 강남구", *got.Address)
	assert.NotNil(t, got.AvatarURL)
}

func TestUpdateProfile_EmptyStringOverwrites(t *testing.T) {
	s := NewProfileStore()

	got := s.UpdateProfile(model.ProfileUpdate{Address: util.GetPtr("")})
	require.NotNil(t, got.Address)
	assert.Empty(t, *got.Address)

	page := s.MyPage()
	require.NotNil(t, page.Profile.Address)
	assert.Empty(t, *page.Profile.Address)
}

func TestMyPage_CopiesAreIndependent(t *testing.T) {
	s := NewProfileStore()

	page := s.MyPage()
	*page.Profile.Address = "mutated"
	*page.Courses[0].LastLectureID = "mutated"
	page.Courses[0].Title = "mutated"

	fresh := s.MyPage()
	assert.Equal(t, "서울시 강남구", *fresh.Profile.Address)
	assert.Equal(t, "course-ai-accelerator-lecture-3", *fresh.Courses[0].LastLectureID)
	assert.Equal(t, "AI 합격 마스터: 산업기사 단기 완성", fresh.Courses[0].Title)
}
