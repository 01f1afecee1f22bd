package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"pdfvault/internal/storage"
	"pdfvault/internal/vault"
	"pdfvault/internal/vault/mocks"
)

func TestListFilesHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		mockSetup  func(*mocks.MockService)
		wantStatus int
		wantTotal  int
	}{
		{
			name: "grouped records",
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().ListAllFiles(gomock.Any()).Return(map[string][]storage.FileRecord{
					"books":  {{ID: "f1", Type: "books", Title: "One"}, {ID: "f2", Type: "books", Title: "Two"}},
					"papers": {{ID: "f3", Type: "papers", Title: "Three"}},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantTotal:  3,
		},
		{
			name: "empty vault",
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().ListAllFiles(gomock.Any()).Return(map[string][]storage.FileRecord{}, nil)
			},
			wantStatus: http.StatusOK,
			wantTotal:  0,
		},
		{
			name: "closed vault",
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().ListAllFiles(gomock.Any()).Return(nil, vault.ErrClosed)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "service error",
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().ListAllFiles(gomock.Any()).Return(nil, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := mocks.NewMockService(ctrl)
			tt.mockSetup(mockSvc)
			handler := NewListFilesHandler(mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/api/files", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				var resp GroupedFilesResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if resp.Total != tt.wantTotal {
					t.Errorf("Total = %d, want %d", resp.Total, tt.wantTotal)
				}
			}
		})
	}
}

func TestIngestHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	validReq := IngestRequest{
		Metadata:    map[string]string{"title": "Test"},
		Pages:       []IngestPageRequest{{Text: "page one", PageNumber: 1}},
		ContentHash: "abc",
		Type:        "books",
		Filename:    "test.pdf",
	}

	tests := []struct {
		name       string
		body       any
		mockSetup  func(*mocks.MockService)
		wantStatus int
	}{
		{
			name: "successful ingest",
			body: validReq,
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(&vault.IngestResult{FileID: "abc", PagesIndexed: 1}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid JSON body",
			body:       "not json",
			mockSetup:  func(m *mocks.MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid base64 pdf data",
			body: IngestRequest{ContentHash: "abc", Type: "books", PDFData: "%%%not-base64%%%"},
			mockSetup: func(m *mocks.MockService) {
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "validation error from coordinator",
			body: IngestRequest{Type: "books"},
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(nil, &vault.ValidationError{Field: "content_hash", Message: "cannot be empty"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid type",
			body: IngestRequest{ContentHash: "abc", Type: "novels"},
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(nil, vault.ErrInvalidType)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "corrupt index",
			body: validReq,
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().Ingest(gomock.Any(), gomock.Any(), gomock.Nil()).
					Return(nil, storage.ErrCorruptIndex)
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := mocks.NewMockService(ctrl)
			tt.mockSetup(mockSvc)
			handler := NewIngestHandler(mockSvc)

			var body bytes.Buffer
			if err := json.NewEncoder(&body).Encode(tt.body); err != nil {
				t.Fatalf("encode body: %v", err)
			}
			req := httptest.NewRequest(http.MethodPost, "/api/files", &body)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestIngestHandler_DecodesPDFData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockService(ctrl)
	mockSvc.EXPECT().
		Ingest(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ any, ext vault.Extraction, _ vault.ProgressFunc) (*vault.IngestResult, error) {
			if string(ext.PDFData) != "%PDF-1.4" {
				t.Errorf("PDFData = %q, want decoded bytes", ext.PDFData)
			}
			return &vault.IngestResult{FileID: "abc"}, nil
		})

	body, _ := json.Marshal(IngestRequest{
		ContentHash: "abc",
		Type:        "books",
		Filename:    "a.pdf",
		PDFData:     base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/files", bytes.NewReader(body))
	w := httptest.NewRecorder()
	NewIngestHandler(mockSvc).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
}

func TestRemoveFileHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		fileID     string
		mockSetup  func(*mocks.MockService)
		wantStatus int
	}{
		{
			name:   "successful removal",
			fileID: "f1",
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().RemoveFile(gomock.Any(), "f1").Return(int64(1), int64(3), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "unknown id is idempotent",
			fileID: "ghost",
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().RemoveFile(gomock.Any(), "ghost").Return(int64(0), int64(0), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "service error",
			fileID: "f1",
			mockSetup: func(m *mocks.MockService) {
				m.EXPECT().RemoveFile(gomock.Any(), "f1").Return(int64(0), int64(0), errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := mocks.NewMockService(ctrl)
			tt.mockSetup(mockSvc)
			handler := NewRemoveFileHandler(mockSvc)

			req := httptest.NewRequest(http.MethodDelete, "/api/files/"+tt.fileID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("fileID", tt.fileID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				var resp RemoveFileResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if resp.FileID != tt.fileID {
					t.Errorf("FileID = %q, want %q", resp.FileID, tt.fileID)
				}
			}
		})
	}
}
