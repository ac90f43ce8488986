package adapter

import (
	"fmt"
	"sync"

	"coursepass/internal/core/model"
	"coursepass/pkg/util"
)

// CatalogStore is the read-only fallback catalog. Details are materialized
// up front from the canned summaries; every lookup crosses the boundary as
// a deep copy so callers can never alias internal state.
type CatalogStore struct {
	mu        sync.RWMutex
	summaries []model.CourseSummary
	details   map[string]model.CourseDetail
}

var curriculumTemplate = []model.LectureSummary{
	{Title: "오리엔테이션 및 합격 전략", DurationMinutes: util.GetPtr(18), PreviewAvailable: true},
	{Title: "필수 개념 정리 1", DurationMinutes: util.GetPtr(32)},
	{Title: "실전 CBT 모의고사 해설", DurationMinutes: util.GetPtr(45)},
	{Title: "오답 노트 작성법", DurationMinutes: util.GetPtr(27), PreviewAvailable: true},
}

func NewCatalogStore() *CatalogStore {
	summaries := []model.CourseSummary{
		{
			ID:            "course-ai-accelerator",
			Title:         "AI 합격 마스터: 산업기사 단기 완성",
			Subtitle:      util.GetPtr("실전 문제 기반으로 4주 만에 합격을 목표로 합니다."),
			Description:   util.GetPtr("필수 이론 정리와 실제 CBT 기출 분석으로 효율적인 학습을 제공합니다."),
			ThumbnailURL:  util.GetPtr("https://placehold.co/600x400/1f2937/fff?text=AI+Master"),
			Instructor:    "김데이터",
			Difficulty:    model.DifficultyIntermediate,
			LectureCount:  util.GetPtr(42),
			Rating:        util.GetPtr(4.8),
			ReviewCount:   util.GetPtr(312),
			OriginalPrice: 129000,
			SalePrice:     util.GetPtr(89000),
			Tags:          []string{"AI", "자격증", "CBT"},
		},
		{
			ID:            "course-cloud-pro",
			Title:         "클라우드 전문가(ADP) 실전 대비반",
			Subtitle:      util.GetPtr("모의고사와 실무 사례로 합격률을 높여요."),
			Description:   util.GetPtr("주요 Cloud 서비스 아키텍처를 한 번에 정리하고, 실무형 케이스 스터디를 제공합니다."),
			ThumbnailURL:  util.GetPtr("https://placehold.co/600x400/2563eb/fff?text=Cloud+Pro"),
			Instructor:    "이지은",
			Difficulty:    model.DifficultyAdvanced,
			LectureCount:  util.GetPtr(58),
			Rating:        util.GetPtr(4.9),
			ReviewCount:   util.GetPtr(198),
			OriginalPrice: 179000,
			SalePrice:     util.GetPtr(129000),
			Tags:          []string{"클라우드", "DevOps"},
		},
		{
			ID:            "course-security-foundation",
			Title:         "정보보안 기사 필수 개념 30일 완성",
			Subtitle:      util.GetPtr("기본 개념부터 자주 출제되는 문제까지 한 번에."),
			Description:   util.GetPtr("공인 강사가 직접 정리한 핵심 개념과 암기 팁을 일일 학습 로드맵으로 제공합니다."),
			ThumbnailURL:  util.GetPtr("https://placehold.co/600x400/7c3aed/fff?text=Security"),
			Instructor:    "박시큐",
			Difficulty:    model.DifficultyBeginner,
			LectureCount:  util.GetPtr(36),
			Rating:        util.GetPtr(4.7),
			ReviewCount:   util.GetPtr(421),
			OriginalPrice: 99000,
			SalePrice:     util.GetPtr(69000),
			Tags:          []string{"보안", "자격증"},
		},
		{
			ID:            "course-data-analytics",
			Title:         "데이터 분석 전문가 실무 프로젝트",
			Subtitle:      util.GetPtr("합격 이후 현업에서 바로 쓰는 실무 케이스."),
			Description:   util.GetPtr("EDA부터 대시보드 구축까지 실전 Notion 템플릿과 함께 학습합니다."),
			ThumbnailURL:  util.GetPtr("https://placehold.co/600x400/ea580c/fff?text=Analytics"),
			Instructor:    "최인사이트",
			Difficulty:    model.DifficultyIntermediate,
			LectureCount:  util.GetPtr(48),
			Rating:        util.GetPtr(4.6),
			ReviewCount:   util.GetPtr(154),
			OriginalPrice: 149000,
			SalePrice:     util.GetPtr(99000),
			Tags:          []string{"데이터", "실무"},
		},
	}

	details := make(map[string]model.CourseDetail, len(summaries))
	for _, course := range summaries {
		details[course.ID] = model.CourseDetail{
			CourseSummary:     course,
			HasAccess:         false,
			GptPreviewSummary: util.GetPtr("주요 출제 포인트를 압축 정리하고, 시험 직전까지 활용 가능한 체크리스트를 제공합니다."),
			About:             util.GetPtr("합격률을 높이기 위한 고효율 학습 커리큘럼입니다. 매주 실전 모의고사와 피드백 세션을 통해 취약점을 보완합니다."),
			Lectures:          curriculumFor(course.ID),
		}
	}

	return &CatalogStore{summaries: summaries, details: details}
}

// Courses returns up to limit canned summaries; limit <= 0 returns them all.
func (s *CatalogStore) Courses(limit int) []model.CourseSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.summaries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.CourseSummary, 0, n)
	for _, c := range s.summaries[:n] {
		out = append(out, copyCourse(c))
	}
	return out
}

// CourseDetail resolves any catalog id. Ids without a canned detail fall
// back to a synthetic one derived from the summary, so the catalog alone
// never makes a known course unresolvable.
func (s *CatalogStore) CourseDetail(id string) (model.CourseDetail, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if d, ok := s.details[id]; ok {
		return copyDetail(d), true
	}
	for _, c := range s.summaries {
		if c.ID == id {
			return model.CourseDetail{
				CourseSummary: copyCourse(c),
				HasAccess:     false,
				About:         clonePtr(c.Description),
				Lectures:      curriculumFor(id),
			}, true
		}
	}
	return model.CourseDetail{}, false
}

func curriculumFor(courseID string) []model.LectureSummary {
	out := make([]model.LectureSummary, len(curriculumTemplate))
	for i, lecture := range curriculumTemplate {
		lecture.ID = fmt.Sprintf("%s-lecture-%d", courseID, i+1)
		lecture.DurationMinutes = clonePtr(lecture.DurationMinutes)
		out[i] = lecture
	}
	return out
}

// clonePtr copies the pointee so copied records share no memory with the
// store.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyCourse(c model.CourseSummary) model.CourseSummary {
	c.Subtitle = clonePtr(c.Subtitle)
	c.Description = clonePtr(c.Description)
	c.ThumbnailURL = clonePtr(c.ThumbnailURL)
	c.LectureCount = clonePtr(c.LectureCount)
	c.Rating = clonePtr(c.Rating)
	c.ReviewCount = clonePtr(c.ReviewCount)
	c.SalePrice = clonePtr(c.SalePrice)
	c.Tags = append([]string(nil), c.Tags...)
	return c
}

func copyLectures(ls []model.LectureSummary) []model.LectureSummary {
	out := make([]model.LectureSummary, len(ls))
	for i, l := range ls {
		l.DurationMinutes = clonePtr(l.DurationMinutes)
		out[i] = l
	}
	return out
}

func copyDetail(d model.CourseDetail) model.CourseDetail {
	d.CourseSummary = copyCourse(d.CourseSummary)
	d.GptPreviewSummary = clonePtr(d.GptPreviewSummary)
	d.About = clonePtr(d.About)
	d.Lectures = copyLectures(d.Lectures)
	return d
}
