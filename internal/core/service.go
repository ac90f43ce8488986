// Package core holds the fallback orchestrator: every storefront operation
// tries the live upstream once and, when that yields no data, synthesizes a
// plausible value from the in-process stores instead of failing. Callers
// always receive a resolved envelope; the only short-circuits are caller
// errors (validation, missing identity) decided before any upstream call.
package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"coursepass/internal/core/model"
)

// Upstream is the unified request client boundary, one typed call per
// operation. Implementations must resolve every call to an envelope.
type Upstream interface {
	FetchCourses(ctx context.Context, token string, q model.CourseQuery) model.Result[model.CourseListResponse]
	FetchCourseDetail(ctx context.Context, token, courseID string) model.Result[model.CourseDetail]
	FetchMyPage(ctx context.Context, token string) model.Result[model.MyPageData]
	UpdateProfile(ctx context.Context, token string, update model.ProfileUpdate) model.Result[model.UserProfile]
	FetchLearningLecture(ctx context.Context, token, lectureID string) model.Result[model.LearningLectureData]
	SaveProgress(ctx context.Context, token string, progress model.LectureProgress) model.Result[model.LectureProgress]
	SaveNote(ctx context.Context, token string, payload model.NotePayload) model.Result[model.NoteEntry]
	SubmitQuestion(ctx context.Context, token, lectureID, question string) model.Result[model.NoteEntry]
	CreateOrder(ctx context.Context, token, courseID string, provider model.PaymentProvider) model.Result[model.CreateOrderResponse]
	ConfirmPayment(ctx context.Context, token, orderNumber string) model.Result[model.PaymentConfirmation]
}

type CatalogStore interface {
	Courses(limit int) []model.CourseSummary
	CourseDetail(id string) (model.CourseDetail, bool)
}

type LearningStore interface {
	Lecture(lectureID string) model.LearningLectureData
	ReplaceProgress(progress model.LectureProgress) model.LectureProgress
	AppendNote(payload model.NotePayload) model.NoteEntry
	AppendQuestion(lectureID, question string) model.NoteEntry
}

type ProfileStore interface {
	MyPage() model.MyPageData
	UpdateProfile(update model.ProfileUpdate) model.UserProfile
}

type OrderStore interface {
	CreateOrder(courseID string, provider model.PaymentProvider) model.CreateOrderResponse
	ConfirmPayment(orderNumber string) model.PaymentConfirmation
}

// Caller carries the request identity: the raw bearer token forwarded to
// the upstream for real verification, and the locally parsed (unverified)
// summary used only for gating and presentation.
type Caller struct {
	User  *model.UserSummary
	Token string
}

func (c Caller) Anonymous() bool { return c.User == nil }

type Service struct {
	upstream Upstream
	catalog  CatalogStore
	learning LearningStore
	profile  ProfileStore
	orders   OrderStore
	log      *zap.Logger
	now      func() time.Time
}

func NewService(upstream Upstream, catalog CatalogStore, learning LearningStore, profile ProfileStore, orders OrderStore, log *zap.Logger) *Service {
	return &Service{
		upstream: upstream,
		catalog:  catalog,
		learning: learning,
		profile:  profile,
		orders:   orders,
		log:      log,
		now:      time.Now,
	}
}

const defaultPageSize = 20

const msgLoginRequired = "로그인이 필요합니다."

// fallback resolves the degraded branch: live data passes through untouched,
// anything else substitutes the synthesized value. The upstream error is
// preserved when there is one, so callers can tell "upstream failed, here is
// a substitute" from "upstream produced no body".
func fallback[T any](s *Service, op, notice string, res model.Result[T], synth func() T) model.Result[T] {
	if res.Data != nil {
		return res
	}
	v := synth()
	err := res.Err
	if err == nil {
		err = &model.APIError{Code: model.CodeMockData, Message: notice}
	}
	s.log.Warn("serving fallback data",
		zap.String("op", op),
		zap.String("upstream_code", err.Code))
	return model.Result[T]{Data: &v, Err: err, Source: model.SourceFallback}
}

// ListCourses fetches the catalog page. Query semantics (search, difficulty,
// sort, limit, cursor) are applied to whichever source produced the items,
// so behavior is identical live or degraded.
func (s *Service) ListCourses(ctx context.Context, caller Caller, q model.CourseQuery) model.Result[model.CourseListResponse] {
	if q.Difficulty != "" && q.Difficulty != "all" && !model.ValidDifficulty(q.Difficulty) {
		return model.Fail[model.CourseListResponse](model.CodeValidation, "difficulty는 beginner, intermediate, advanced 또는 all 이어야 합니다.")
	}
	if q.Limit < 0 {
		return model.Fail[model.CourseListResponse](model.CodeValidation, "limit은 0 이상의 값이어야 합니다.")
	}

	res := fallback(s, "list_courses", "목업 데이터를 사용했습니다.",
		s.upstream.FetchCourses(ctx, caller.Token, q),
		func() model.CourseListResponse {
			return model.CourseListResponse{Items: s.catalog.Courses(0)}
		})

	filtered := s.applyCourseQuery(*res.Data, q)
	res.Data = &filtered
	return res
}

func (s *Service) applyCourseQuery(list model.CourseListResponse, q model.CourseQuery) model.CourseListResponse {
	items := list.Items

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		kept := make([]model.CourseSummary, 0, len(items))
		for _, c := range items {
			if strings.Contains(strings.ToLower(c.Title), needle) ||
				strings.Contains(strings.ToLower(c.Instructor), needle) {
				kept = append(kept, c)
			}
		}
		items = kept
	}

	if q.Difficulty != "" && q.Difficulty != "all" {
		kept := make([]model.CourseSummary, 0, len(items))
		for _, c := range items {
			if string(c.Difficulty) == q.Difficulty {
				kept = append(kept, c)
			}
		}
		items = kept
	}

	switch q.Sort {
	case "priceAsc":
		sort.SliceStable(items, func(i, j int) bool { return items[i].EffectivePrice() < items[j].EffectivePrice() })
	case "priceDesc":
		sort.SliceStable(items, func(i, j int) bool { return items[i].EffectivePrice() > items[j].EffectivePrice() })
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []model.CourseSummary{}
	}

	var next *string
	if q.Cursor != "" && len(items) >= limit {
		cursor := fmt.Sprintf("cursor_%d", s.now().UnixMilli())
		next = &cursor
	}
	return model.CourseListResponse{Items: items, NextCursor: next}
}

// GetCourseDetail resolves a course page. An id neither the upstream nor the
// catalog knows is a hard NOT_FOUND; everything else degrades gracefully.
func (s *Service) GetCourseDetail(ctx context.Context, caller Caller, courseID string) model.Result[model.CourseDetail] {
	if courseID == "" {
		return model.Fail[model.CourseDetail](model.CodeValidation, "courseId가 필요합니다.")
	}

	res := s.upstream.FetchCourseDetail(ctx, caller.Token, courseID)
	if res.Data != nil {
		return res
	}

	detail, ok := s.catalog.CourseDetail(courseID)
	if !ok {
		if res.Err != nil && res.Err.Code == model.CodeNotFound {
			return res
		}
		return model.Fail[model.CourseDetail](model.CodeNotFound, "요청하신 강의를 찾을 수 없습니다.")
	}
	err := res.Err
	if err == nil {
		err = &model.APIError{Code: model.CodeMockData, Message: "목업 데이터를 사용했습니다."}
	}
	s.log.Warn("serving fallback data",
		zap.String("op", "course_detail"),
		zap.String("upstream_code", err.Code))
	return model.Result[model.CourseDetail]{Data: &detail, Err: err, Source: model.SourceFallback}
}

// GetMyPage returns the caller's profile and enrolled courses. On the
// degraded branch the parsed identity overlays the canned profile, so the
// page still shows the actual caller.
func (s *Service) GetMyPage(ctx context.Context, caller Caller) model.Result[model.MyPageData] {
	if caller.Anonymous() {
		return model.Fail[model.MyPageData](model.CodeUnauthorized, msgLoginRequired)
	}

	return fallback(s, "my_page", "마이페이지 데이터를 목업으로 불러왔습니다.",
		s.upstream.FetchMyPage(ctx, caller.Token),
		func() model.MyPageData {
			data := s.profile.MyPage()
			user := caller.User
			data.Profile = model.UserProfile{
				ID:        user.ID,
				Email:     user.Email,
				Nickname:  nicknameFor(user),
				AvatarURL: user.AvatarURL,
				Address:   data.Profile.Address,
			}
			return data
		})
}

// UpdateProfile applies a partial patch. Field type validation happens at
// the decode edge; here only identity gating applies.
func (s *Service) UpdateProfile(ctx context.Context, caller Caller, update model.ProfileUpdate) model.Result[model.UserProfile] {
	if caller.Anonymous() {
		return model.Fail[model.UserProfile](model.CodeUnauthorized, msgLoginRequired)
	}

	return fallback(s, "update_profile", "프로필을 임시로 업데이트했습니다.",
		s.upstream.UpdateProfile(ctx, caller.Token, update),
		func() model.UserProfile {
			stored := s.profile.UpdateProfile(update)
			user := caller.User
			out := model.UserProfile{
				ID:        user.ID,
				Email:     user.Email,
				Nickname:  nicknameFor(user),
				AvatarURL: user.AvatarURL,
				Address:   stored.Address,
			}
			if update.Nickname != nil {
				out.Nickname = *update.Nickname
			}
			if update.AvatarURL != nil {
				out.AvatarURL = update.AvatarURL
			}
			return out
		})
}

func (s *Service) GetLearningLecture(ctx context.Context, caller Caller, lectureID string) model.Result[model.LearningLectureData] {
	if caller.Anonymous() {
		return model.Fail[model.LearningLectureData](model.CodeUnauthorized, msgLoginRequired)
	}
	if lectureID == "" {
		return model.Fail[model.LearningLectureData](model.CodeValidation, "lectureId가 필요합니다.")
	}

	return fallback(s, "learning_lecture", "학습 데이터를 목업으로 불러왔습니다.",
		s.upstream.FetchLearningLecture(ctx, caller.Token, lectureID),
		func() model.LearningLectureData { return s.learning.Lecture(lectureID) })
}

// SaveProgress replaces the lecture's progress record. Out-of-range percent
// is rejected before anything reaches the upstream or storage.
func (s *Service) SaveProgress(ctx context.Context, caller Caller, progress model.LectureProgress) model.Result[model.LectureProgress] {
	if caller.Anonymous() {
		return model.Fail[model.LectureProgress](model.CodeUnauthorized, msgLoginRequired)
	}
	if progress.LectureID == "" {
		return model.Fail[model.LectureProgress](model.CodeValidation, "lectureId, secondsWatched, percent가 필요합니다.")
	}
	if progress.Percent < 0 || progress.Percent > 100 {
		return model.Fail[model.LectureProgress](model.CodeValidation, "percent는 0-100 사이의 값이어야 합니다.")
	}
	if progress.SecondsWatched < 0 {
		return model.Fail[model.LectureProgress](model.CodeValidation, "secondsWatched는 0 이상의 값이어야 합니다.")
	}

	return fallback(s, "save_progress", "진행률 저장을 목업으로 처리했습니다.",
		s.upstream.SaveProgress(ctx, caller.Token, progress),
		func() model.LectureProgress { return s.learning.ReplaceProgress(progress) })
}

func (s *Service) SaveNote(ctx context.Context, caller Caller, payload model.NotePayload) model.Result[model.NoteEntry] {
	if caller.Anonymous() {
		return model.Fail[model.NoteEntry](model.CodeUnauthorized, msgLoginRequired)
	}
	if payload.LectureID == "" || payload.NoteType == "" || payload.Content == "" {
		return model.Fail[model.NoteEntry](model.CodeValidation, "lectureId, noteType, content가 필요합니다.")
	}
	if !model.ValidNoteType(payload.NoteType) {
		return model.Fail[model.NoteEntry](model.CodeValidation, "noteType은 user_memo, auto_summary, qa_answer 중 하나여야 합니다.")
	}

	return fallback(s, "save_note", "메모 저장을 목업으로 처리했습니다.",
		s.upstream.SaveNote(ctx, caller.Token, payload),
		func() model.NoteEntry { return s.learning.AppendNote(payload) })
}

func (s *Service) SubmitQuestion(ctx context.Context, caller Caller, lectureID, question string) model.Result[model.NoteEntry] {
	if caller.Anonymous() {
		return model.Fail[model.NoteEntry](model.CodeUnauthorized, msgLoginRequired)
	}
	if lectureID == "" || strings.TrimSpace(question) == "" {
		return model.Fail[model.NoteEntry](model.CodeValidation, "lectureId와 question이 필요합니다.")
	}

	return fallback(s, "submit_question", "질문 전송을 목업으로 처리했습니다.",
		s.upstream.SubmitQuestion(ctx, caller.Token, lectureID, question),
		func() model.NoteEntry { return s.learning.AppendQuestion(lectureID, question) })
}

func (s *Service) CreateOrder(ctx context.Context, caller Caller, courseID string, provider model.PaymentProvider) model.Result[model.CreateOrderResponse] {
	if caller.Anonymous() {
		return model.Fail[model.CreateOrderResponse](model.CodeUnauthorized, msgLoginRequired)
	}
	if courseID == "" {
		return model.Fail[model.CreateOrderResponse](model.CodeValidation, "courseId와 provider가 필요합니다.")
	}
	if !model.ValidProvider(provider) {
		return model.Fail[model.CreateOrderResponse](model.CodeValidation, "지원하지 않는 결제 수단입니다.")
	}

	return fallback(s, "create_order", "결제 생성을 목업 데이터로 처리했습니다.",
		s.upstream.CreateOrder(ctx, caller.Token, courseID, provider),
		func() model.CreateOrderResponse { return s.orders.CreateOrder(courseID, provider) })
}

// ConfirmPayment reports the order's payment state. The fallback store only
// ever answers paid; pending and failed are reachable through a live
// provider-backed upstream.
func (s *Service) ConfirmPayment(ctx context.Context, caller Caller, orderNumber string) model.Result[model.PaymentConfirmation] {
	if caller.Anonymous() {
		return model.Fail[model.PaymentConfirmation](model.CodeUnauthorized, msgLoginRequired)
	}
	if orderNumber == "" {
		return model.Fail[model.PaymentConfirmation](model.CodeValidation, "orderNumber가 필요합니다.")
	}

	return fallback(s, "confirm_payment", "결제 확인을 목업 데이터로 처리했습니다.",
		s.upstream.ConfirmPayment(ctx, caller.Token, orderNumber),
		func() model.PaymentConfirmation { return s.orders.ConfirmPayment(orderNumber) })
}

func nicknameFor(user *model.UserSummary) string {
	if user.Nickname != nil && *user.Nickname != "" {
		return *user.Nickname
	}
	if at := strings.Index(user.Email, "@"); at > 0 {
		return user.Email[:at]
	}
	return user.Email
}
