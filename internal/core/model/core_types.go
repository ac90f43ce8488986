package model

import "time"

// All core models live here together for simplicity. JSON tags follow the
// wire names the storefront frontend consumes (camelCase).

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ValidDifficulty reports whether s is a known difficulty level.
func ValidDifficulty(s string) bool {
	switch Difficulty(s) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// UserSummary is the presentation identity derived from an unverified bearer
// token. It is a hint about who the caller claims to be, never proof.
type UserSummary struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Nickname  *string `json:"nickname,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

type CourseSummary struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Subtitle      *string    `json:"subtitle,omitempty"`
	Description   *string    `json:"description,omitempty"`
	ThumbnailURL  *string    `json:"thumbnailUrl,omitempty"`
	Instructor    string     `json:"instructor"`
	Difficulty    Difficulty `json:"difficulty"`
	LectureCount  *int       `json:"lectureCount,omitempty"`
	Rating        *float64   `json:"rating,omitempty"`
	ReviewCount   *int       `json:"reviewCount,omitempty"`
	OriginalPrice int        `json:"originalPrice"`
	SalePrice     *int       `json:"salePrice,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
}

// EffectivePrice is the sale price when one is set, the original otherwise.
func (c CourseSummary) EffectivePrice() int {
	if c.SalePrice != nil {
		return *c.SalePrice
	}
	return c.OriginalPrice
}

type LectureSummary struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	DurationMinutes  *int   `json:"durationMinutes,omitempty"`
	PreviewAvailable bool   `json:"previewAvailable,omitempty"`
}

type CourseDetail struct {
	CourseSummary
	GptPreviewSummary *string          `json:"gptPreviewSummary,omitempty"`
	About             *string          `json:"about,omitempty"`
	HasAccess         bool             `json:"hasAccess"`
	Lectures          []LectureSummary `json:"lectures"`
}

type CourseListResponse struct {
	Items      []CourseSummary `json:"items"`
	NextCursor *string         `json:"nextCursor"`
}

// CourseQuery carries the client-visible list parameters. The same semantics
// apply whether the items came from the upstream or from the fallback store.
type CourseQuery struct {
	Search     string
	Difficulty string // known level, "all" or empty
	Sort       string // "priceAsc" | "priceDesc"; other keys leave order as-is
	Cursor     string
	Limit      int // <= 0 means the default page size
}

type PaymentProvider string

const (
	ProviderKakaoPay PaymentProvider = "kakaopay"
	ProviderTossPay  PaymentProvider = "tosspay"
	ProviderNaverPay PaymentProvider = "naverpay"
	ProviderCard     PaymentProvider = "card"
)

// ValidProvider reports whether p is a supported payment provider.
func ValidProvider(p PaymentProvider) bool {
	switch p {
	case ProviderKakaoPay, ProviderTossPay, ProviderNaverPay, ProviderCard:
		return true
	}
	return false
}

type CreateOrderResponse struct {
	OrderNumber string `json:"orderNumber"`
	RedirectURL string `json:"redirectUrl"`
	CourseID    string `json:"courseId"`
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type PaymentConfirmation struct {
	Status   PaymentStatus `json:"status"`
	CourseID string        `json:"courseId"`
}

type UserProfile struct {
	ID        string  `json:"id"`
	Nickname  string  `json:"nickname"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// ProfileUpdate is a partial profile patch. A nil field leaves the stored
// value untouched; a non-nil field (including the empty string) overwrites.
type ProfileUpdate struct {
	Nickname  *string `json:"nickname,omitempty"`
	Address   *string `json:"address,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

type UserCourseSummary struct {
	CourseID         string  `json:"courseId"`
	Title            string  `json:"title"`
	ThumbnailURL     *string `json:"thumbnailUrl,omitempty"`
	ProgressPercent  float64 `json:"progressPercent"`
	LastLectureID    *string `json:"lastLectureId,omitempty"`
	LastLectureTitle *string `json:"lastLectureTitle,omitempty"`
}

type MyPageData struct {
	Profile UserProfile         `json:"profile"`
	Courses []UserCourseSummary `json:"courses"`
}

// LectureProgress uses whole-record replace semantics keyed by lecture;
// there is no field-level merge.
type LectureProgress struct {
	LectureID      string  `json:"lectureId"`
	SecondsWatched int     `json:"secondsWatched"`
	Percent        float64 `json:"percent"`
}

type NoteType string

const (
	NoteUserMemo    NoteType = "user_memo"
	NoteAutoSummary NoteType = "auto_summary"
	NoteQAAnswer    NoteType = "qa_answer"
)

// ValidNoteType reports whether t is a known note type.
func ValidNoteType(t NoteType) bool {
	switch t {
	case NoteUserMemo, NoteAutoSummary, NoteQAAnswer:
		return true
	}
	return false
}

// NoteEntry is immutable once created. Ids are globally unique and strictly
// increasing across the process, regardless of lecture.
type NoteEntry struct {
	NoteID    int64     `json:"noteId"`
	LectureID string    `json:"lectureId"`
	NoteType  NoteType  `json:"noteType"`
	Question  *string   `json:"question,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type NotePayload struct {
	LectureID string   `json:"lectureId"`
	NoteType  NoteType `json:"noteType"`
	Content   string   `json:"content"`
	Question  *string  `json:"question,omitempty"`
}

// LectureDetail extends the summary with playback fields.
type LectureDetail struct {
	LectureSummary
	VideoURL    string  `json:"videoUrl"`
	Description *string `json:"description,omitempty"`
}

type CourseRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// LearningLectureData aggregates everything the learning page needs for one
// lecture. Notes are newest-first.
type LearningLectureData struct {
	Lecture   LectureDetail    `json:"lecture"`
	Course    CourseRef        `json:"course"`
	Notes     []NoteEntry      `json:"notes"`
	Progress  *LectureProgress `json:"progress,omitempty"`
	Siblings  []LectureSummary `json:"siblings"`
	HasAccess bool             `json:"hasAccess"`
}
