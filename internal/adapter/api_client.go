package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"coursepass/internal/core/model"
)

// Generic texts used when an upstream failure carries no usable body.
const (
	genericHTTPFailure    = "요청을 처리하는 중 오류가 발생했습니다."
	genericNetworkFailure = "네트워크 오류가 발생했습니다."
)

// APIClient is the unified upstream client. Every call is a single attempt
// that resolves to an envelope: HTTP and transport failures are normal,
// representable outcomes, never panics or error returns. Resilience (the
// fallback) belongs to the orchestrator, so there is no retry, backoff or
// circuit breaking here.
type APIClient struct {
	baseURL string
	hc      *http.Client
	log     *zap.Logger
}

func NewAPIClient(baseURL string, hc *http.Client, log *zap.Logger) *APIClient {
	return &APIClient{baseURL: baseURL, hc: hc, log: log}
}

// call performs one upstream request. A bearer header is attached only when
// a token is supplied; the body, when present, is sent as JSON.
func call[T any](ctx context.Context, c *APIClient, method, path string, body any, token string) model.Result[T] {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return model.Fail[T](model.CodeInternal, err.Error())
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return model.Fail[T](model.CodeInternal, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Debug("upstream unreachable", zap.String("path", path), zap.Error(err))
		return model.Fail[T](model.CodeNetworkError, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.Fail[T](upstreamError(resp))
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Debug("upstream body not decodable", zap.String("path", path), zap.Error(err))
		return model.Fail[T](model.CodeNetworkError, err.Error())
	}
	return model.OK(out)
}

// upstreamError maps a non-2xx response to a code/message pair, preferring
// the structured {error:{code,message}} body when one is present.
func upstreamError(resp *http.Response) (string, string) {
	code := fmt.Sprintf("HTTP_%d", resp.StatusCode)
	message := genericHTTPFailure

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body struct {
		Error *model.APIError `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != nil {
		if body.Error.Code != "" {
			code = body.Error.Code
		}
		if body.Error.Message != "" {
			message = body.Error.Message
		}
	}
	return code, message
}

func (c *APIClient) FetchCourses(ctx context.Context, token string, q model.CourseQuery) model.Result[model.CourseListResponse] {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Difficulty != "" && q.Difficulty != "all" {
		params.Set("difficulty", q.Difficulty)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.Cursor != "" {
		params.Set("cursor", q.Cursor)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	path := "/api/courses"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return call[model.CourseListResponse](ctx, c, http.MethodGet, path, nil, token)
}

func (c *APIClient) FetchCourseDetail(ctx context.Context, token, courseID string) model.Result[model.CourseDetail] {
	return call[model.CourseDetail](ctx, c, http.MethodGet, "/api/courses/"+url.PathEscape(courseID), nil, token)
}

func (c *APIClient) FetchMyPage(ctx context.Context, token string) model.Result[model.MyPageData] {
	return call[model.MyPageData](ctx, c, http.MethodGet, "/api/me", nil, token)
}

func (c *APIClient) UpdateProfile(ctx context.Context, token string, update model.ProfileUpdate) model.Result[model.UserProfile] {
	return call[model.UserProfile](ctx, c, http.MethodPatch, "/api/me/profile", update, token)
}

func (c *APIClient) FetchLearningLecture(ctx context.Context, token, lectureID string) model.Result[model.LearningLectureData] {
	return call[model.LearningLectureData](ctx, c, http.MethodGet, "/api/learning/lecture/"+url.PathEscape(lectureID), nil, token)
}

func (c *APIClient) SaveProgress(ctx context.Context, token string, progress model.LectureProgress) model.Result[model.LectureProgress] {
	return call[model.LectureProgress](ctx, c, http.MethodPost, "/api/learning/progress", progress, token)
}

func (c *APIClient) SaveNote(ctx context.Context, token string, payload model.NotePayload) model.Result[model.NoteEntry] {
	return call[model.NoteEntry](ctx, c, http.MethodPost, "/api/learning/notes", payload, token)
}

func (c *APIClient) SubmitQuestion(ctx context.Context, token, lectureID, question string) model.Result[model.NoteEntry] {
	body := map[string]string{"lectureId": lectureID, "question": question}
	return call[model.NoteEntry](ctx, c, http.MethodPost, "/functions/v1/learning/answerQuestion", body, token)
}

func (c *APIClient) CreateOrder(ctx context.Context, token, courseID string, provider model.PaymentProvider) model.Result[model.CreateOrderResponse] {
	body := map[string]string{"courseId": courseID, "provider": string(provider)}
	return call[model.CreateOrderResponse](ctx, c, http.MethodPost, "/functions/v1/payments/createOrder", body, token)
}

func (c *APIClient) ConfirmPayment(ctx context.Context, token, orderNumber string) model.Result[model.PaymentConfirmation] {
	body := map[string]string{"orderNumber": orderNumber}
	return call[model.PaymentConfirmation](ctx, c, http.MethodPost, "/functions/v1/payments/confirmPayment", body, token)
}
