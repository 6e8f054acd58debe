package browser

import (
	"strings"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// CapturedRequest is one entry in the network request log. Status is set
// when a response with the same truncated URL arrives and stays absent
// otherwise.
type CapturedRequest struct {
	URL          string `json:"url"`
	Method       string `json:"method"`
	ResourceType string `json:"resource_type"`
	Status       *int   `json:"status,omitempty"`
}

// CaptureLog is the frozen request log returned when capture stops. Count
// is the filtered length before the MaxRequests cap is applied to Requests;
// Truncated reports whether the cap cut anything.
type CaptureLog struct {
	Requests  []CapturedRequest `json:"requests"`
	Count     int               `json:"count"`
	Truncated bool              `json:"truncated"`
}

// Recorder accumulates a bounded log of network requests observed on a
// page. It is owned by the workflow runner and toggled by the
// capture_requests action: Start clears the log and begins capturing, Stop
// freezes it and returns the entries.
//
// Playwright delivers request and response events on its own goroutine, so
// all state is mutex-guarded even though step execution is sequential.
type Recorder struct {
	mu        sync.Mutex
	capturing bool
	requests  []*CapturedRequest
}

// NewRecorder creates an idle recorder with an empty log.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Attach subscribes the recorder to the page's request and response events.
// Events arriving while the recorder is idle are ignored.
func (r *Recorder) Attach(page playwright.Page) {
	page.OnRequest(func(request playwright.Request) {
		r.record(request.URL(), request.Method(), request.ResourceType())
	})
	page.OnResponse(func(response playwright.Response) {
		r.recordResponse(response.URL(), response.Status())
	})
}

// Start clears any previous log and begins capturing.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.capturing = true
	r.requests = nil
}

// Stop ends capturing and returns the accumulated log. When filter is
// non-empty, only entries whose URL contains it are returned; count and
// truncated describe the filtered set. Stopping an idle recorder returns
// the current (typically empty) log.
func (r *Recorder) Stop(filter string) CaptureLog {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.capturing = false

	filtered := make([]CapturedRequest, 0, len(r.requests))
	for _, req := range r.requests {
		if filter != "" && !strings.Contains(req.URL, filter) {
			continue
		}
		filtered = append(filtered, *req)
	}

	log := CaptureLog{
		Requests:  filtered,
		Count:     len(filtered),
		Truncated: len(filtered) > MaxRequests,
	}
	if log.Truncated {
		log.Requests = filtered[:MaxRequests]
	}
	return log
}

// Capturing reports whether the recorder is currently accumulating requests.
func (r *Recorder) Capturing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.capturing
}

// record appends an outbound request to the log. Once the log holds
// MaxRequests entries, further requests are dropped silently; responses for
// already-recorded entries still match.
func (r *Recorder) record(url, method, resourceType string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.capturing || len(r.requests) >= MaxRequests {
		return
	}

	r.requests = append(r.requests, &CapturedRequest{
		URL:          TruncateURL(url),
		Method:       method,
		ResourceType: resourceType,
	})
}

// recordResponse sets the status on the first recorded request whose
// truncated URL equals the response's truncated URL. Two in-flight requests
// sharing a 200-character URL prefix therefore collide, and the status may
// land on the wrong entry; the truncated URL is the only correlation key.
// Responses with no matching entry are ignored.
func (r *Recorder) recordResponse(url string, status int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.capturing {
		return
	}

	truncated := TruncateURL(url)
	for _, req := range r.requests {
		if req.URL == truncated {
			s := status
			req.Status = &s
			break
		}
	}
}
