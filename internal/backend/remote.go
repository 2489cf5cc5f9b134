package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/FiQCI/qflip/internal/circuit"
	"github.com/FiQCI/qflip/internal/device"
)

// Job states reported by the endpoint. Anything other than the two
// terminal states keeps the poll loop going.
const (
	statusCompleted = "completed"
	statusFailed    = "failed"
)

const defaultPollInterval = 2 * time.Second

// Remote runs jobs on a cortex-style REST endpoint: POST the job, then
// poll its status until terminal.
type Remote struct {
	base string
	dev  *device.Device
	hc   *http.Client
	poll time.Duration
}

var _ Backend = (*Remote)(nil)

// RemoteOption configures a Remote.
type RemoteOption func(*Remote)

// WithHTTPClient overrides the HTTP client (for testing).
func WithHTTPClient(hc *http.Client) RemoteOption {
	return func(r *Remote) { r.hc = hc }
}

// WithPollInterval overrides the status poll interval.
func WithPollInterval(d time.Duration) RemoteOption {
	return func(r *Remote) { r.poll = d }
}

// NewRemote returns a Remote for the given endpoint and device.
func NewRemote(endpoint string, dev *device.Device, opts ...RemoteOption) *Remote {
	r := &Remote{
		base: strings.TrimRight(endpoint, "/"),
		dev:  dev,
		hc:   &http.Client{Timeout: 30 * time.Second},
		poll: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Remote) Name() string { return TargetRemote }

func (r *Remote) Device() *device.Device { return r.dev }

// Wire types for the jobs endpoint.
type submitRequest struct {
	Name   string `json:"name,omitempty"`
	QASM   string `json:"qasm"`
	Layout []int  `json:"layout,omitempty"`
	Shots  int    `json:"shots"`
}

type submitResponse struct {
	ID string `json:"id"`
}

type jobStatus struct {
	ID               string         `json:"id"`
	Status           string         `json:"status"`
	Counts           map[string]int `json:"counts,omitempty"`
	CalibrationSetID string         `json:"calibration_set_id,omitempty"`
	QubitMapping     []qubitMapping `json:"qubit_mapping,omitempty"`
	Error            string         `json:"error,omitempty"`
}

type qubitMapping struct {
	Logical      int    `json:"logical"`
	PhysicalName string `json:"physical_name"`
}

// Submit posts the job and returns a handle polling its status.
func (r *Remote) Submit(ctx context.Context, job Job) (Handle, error) {
	if err := checkJob(job, r.dev, TargetRemote); err != nil {
		return nil, err
	}

	layout := job.Layout
	if layout == nil {
		layout = circuit.Identity(job.Circuit.NumQubits)
	}
	req := submitRequest{
		Name:   job.Circuit.Name,
		QASM:   job.Circuit.QASM(),
		Layout: []int(layout),
		Shots:  job.Shots,
	}

	var resp submitResponse
	if err := r.post(ctx, "/jobs", req, &resp); err != nil {
		return nil, &SubmitError{Backend: TargetRemote, Reason: "endpoint rejected job", Err: err}
	}
	if resp.ID == "" {
		return nil, &SubmitError{Backend: TargetRemote, Reason: "endpoint returned no job id"}
	}
	return &remoteHandle{r: r, id: resp.ID}, nil
}

type remoteHandle struct {
	r  *Remote
	id string
}

func (h *remoteHandle) ID() string { return h.id }

// Result polls the job until it completes or fails. The first poll is
// immediate; later ones wait out the poll interval.
func (h *remoteHandle) Result(ctx context.Context) (*Result, error) {
	ticker := time.NewTicker(h.r.poll)
	defer ticker.Stop()

	for {
		var st jobStatus
		if err := h.r.getJSON(ctx, "/jobs/"+h.id, &st); err != nil {
			return nil, &ExecError{Backend: TargetRemote, JobID: h.id, Status: "unreachable", Err: err}
		}

		switch st.Status {
		case statusCompleted:
			if len(st.Counts) == 0 {
				return nil, &ExecError{
					Backend: TargetRemote, JobID: h.id, Status: statusCompleted,
					Err: errors.New("completed job carries no counts"),
				}
			}
			return &Result{
				JobID:            h.id,
				Counts:           Counts(st.Counts),
				CalibrationSetID: st.CalibrationSetID,
				PhysicalNames:    physicalNames(st.QubitMapping),
			}, nil
		case statusFailed:
			msg := st.Error
			if msg == "" {
				msg = "job failed"
			}
			return nil, &ExecError{Backend: TargetRemote, JobID: h.id, Status: statusFailed, Err: errors.New(msg)}
		}

		select {
		case <-ctx.Done():
			return nil, &ExecError{Backend: TargetRemote, JobID: h.id, Status: st.Status, Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}

// physicalNames flattens the endpoint's qubit mapping into a slice
// indexed by register position.
func physicalNames(mapping []qubitMapping) []string {
	if len(mapping) == 0 {
		return nil
	}
	names := make([]string, len(mapping))
	for _, m := range mapping {
		if m.Logical >= 0 && m.Logical < len(names) {
			names[m.Logical] = m.PhysicalName
		}
	}
	return names
}

func (r *Remote) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.base+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return r.do(req, out)
}

func (r *Remote) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.base+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return r.do(req, out)
}

func (r *Remote) do(req *http.Request, out any) error {
	resp, err := r.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if len(detail) > 0 {
			return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(detail)))
		}
		return fmt.Errorf("%s", resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
