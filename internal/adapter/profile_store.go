package adapter

import (
	"sync"

	"coursepass/internal/core/model"
	"coursepass/pkg/util"
)

// ProfileStore holds the single fallback profile and a fixed list of
// enrolled courses. Updates merge field by field: nil means untouched, a
// non-nil value (the empty string included) overwrites.
type ProfileStore struct {
	mu      sync.Mutex
	profile model.UserProfile
	courses []model.UserCourseSummary
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profile: model.UserProfile{
			ID:        "mock-user-1",
			Nickname:  "합격러",
			Email:     "mockuser@example.com",
			AvatarURL: util.GetPtr("https://placehold.co/96x96?text=HK"),
			Address:   util.GetPtr("서울시 강남구"),
		},
		courses: []model.UserCourseSummary{
			{
				CourseID:         "course-ai-accelerator",
				Title:            "AI 합격 마스터: 산업기사 단기 완성",
				ThumbnailURL:     util.GetPtr("https://placehold.co/300x200?text=AI"),
				ProgressPercent:  72,
				LastLectureID:    util.GetPtr("course-ai-accelerator-lecture-3"),
				LastLectureTitle: util.GetPtr("실전 CBT 모의고사 해설"),
			},
			{
				CourseID:         "course-security-foundation",
				Title:            "정보보안 기사 필수 개념 30일 완성",
				ThumbnailURL:     util.GetPtr("https://placehold.co/300x200?text=Security"),
				ProgressPercent:  38,
				LastLectureID:    util.GetPtr("course-security-foundation-lecture-2"),
				LastLectureTitle: util.GetPtr("네트워크 보안 핵심 정리"),
			},
		},
	}
}

func (s *ProfileStore) MyPage() model.MyPageData {
	s.mu.Lock()
	defer s.mu.Unlock()

	courses := make([]model.UserCourseSummary, len(s.courses))
	for i, c := range s.courses {
		c.ThumbnailURL = clonePtr(c.ThumbnailURL)
		c.LastLectureID = clonePtr(c.LastLectureID)
		c.LastLectureTitle = clonePtr(c.LastLectureTitle)
		courses[i] = c
	}
	return model.MyPageData{
		Profile: copyProfile(s.profile),
		Courses: courses,
	}
}

func (s *ProfileStore) UpdateProfile(update model.ProfileUpdate) model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.Nickname != nil {
		s.profile.Nickname = *update.Nickname
	}
	if update.Address != nil {
		s.profile.Address = clonePtr(update.Address)
	}
	if update.AvatarURL != nil {
		s.profile.AvatarURL = clonePtr(update.AvatarURL)
	}
	return copyProfile(s.profile)
}

func copyProfile(p model.UserProfile) model.UserProfile {
	p.AvatarURL = clonePtr(p.AvatarURL)
	p.Address = clonePtr(p.Address)
	return p
}
