// internal/handlers/deck_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go_5_teach_board/internal/handlers"
	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/service/mocks"
)

func newDeckTestRouter(t *testing.T) (*chi.Mux, *mocks.MockDeckService) {
	t.Helper()
	mockService := mocks.NewMockDeckService(t)
	handler := handlers.NewDeckHandler(mockService, nil)

	r := chi.NewRouter()
	r.Route("/api/v1/flashcards", func(r chi.Router) {
		r.Get("/", handler.GetDecks)
		r.Post("/", handler.PostDeck)
		r.Route("/{deck_id}", func(r chi.Router) {
			r.Get("/", handler.GetDeck)
			r.Put("/", handler.PutDeck)
			r.Delete("/", handler.DeleteDeck)
		})
	})
	return r, mockService
}

func validDeckBody() map[string]any {
	return map[string]any{
		"name": "Unit 1",
		"type": "english",
		"questions": []map[string]any{
			{"question": "apple", "answer": "りんご", "difficulty": "easy"},
		},
	}
}

func TestDeckHandler_PostDeck(t *testing.T) {
	expected := &model.FlashcardDeck{
		ID:   "deck-1",
		Name: "Unit 1",
		Type: model.CategoryEnglish,
		Questions: []model.DeckQuestion{
			{Question: "apple", Answer: "りんご", Difficulty: model.DifficultyEasy},
		},
	}

	tests := []struct {
		name           string
		body           any
		setupMock      func(m *mocks.MockDeckService)
		expectedStatus int
	}{
		{
			name: "正常系: デッキが作成される",
			body: validDeckBody(),
			setupMock: func(m *mocks.MockDeckService) {
				m.On("CreateDeck", mock.Anything, mock.AnythingOfType("*model.FlashcardDeck")).
					Return(expected, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "異常系: JSONとして不正なボディ",
			body:           "{not json",
			setupMock:      func(m *mocks.MockDeckService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "異常系: 名前が空",
			body: map[string]any{
				"name": "",
				"questions": []map[string]any{
					{"question": "apple", "answer": "りんご"},
				},
			},
			setupMock:      func(m *mocks.MockDeckService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "異常系: 質問が0件",
			body: map[string]any{
				"name":      "Unit 1",
				"questions": []map[string]any{},
			},
			setupMock:      func(m *mocks.MockDeckService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newDeckTestRouter(t)
			tt.setupMock(mockService)

			var bodyReader *bytes.Buffer
			if s, ok := tt.body.(string); ok {
				bodyReader = bytes.NewBufferString(s)
			} else {
				raw, err := json.Marshal(tt.body)
				require.NoError(t, err)
				bodyReader = bytes.NewBuffer(raw)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/flashcards/", bodyReader)
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusCreated {
				var got model.FlashcardDeck
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, expected.ID, got.ID)
				assert.Equal(t, expected.Name, got.Name)
			} else {
				var errResp model.APIErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.NotEmpty(t, errResp.Error.Code)
				assert.NotEmpty(t, errResp.Error.Message)
			}
		})
	}
}

func TestDeckHandler_GetDeck(t *testing.T) {
	expected := &model.FlashcardDeck{
		ID:   "deck-1",
		Name: "Unit 1",
		Questions: []model.DeckQuestion{
			{Question: "apple", Answer: "りんご"},
		},
	}

	tests := []struct {
		name           string
		deckID         string
		setupMock      func(m *mocks.MockDeckService)
		expectedStatus int
	}{
		{
			name:   "正常系: デッキが返る",
			deckID: "deck-1",
			setupMock: func(m *mocks.MockDeckService) {
				m.On("GetDeck", mock.Anything, "deck-1").Return(expected, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "異常系: 存在しないデッキ",
			deckID: "missing",
			setupMock: func(m *mocks.MockDeckService) {
				m.On("GetDeck", mock.Anything, "missing").
					Return(nil, model.NewAppError("DECK_NOT_FOUND", "指定されたデッキが見つかりません。", "", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newDeckTestRouter(t)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/flashcards/"+tt.deckID, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestDeckHandler_GetDecks(t *testing.T) {
	router, mockService := newDeckTestRouter(t)
	mockService.On("ListDecks", mock.Anything).Return(nil, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/flashcards/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// 0件でもnullではなく空配列を返す
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestDeckHandler_DeleteDeck(t *testing.T) {
	router, mockService := newDeckTestRouter(t)
	mockService.On("DeleteDeck", mock.Anything, "deck-1").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/flashcards/deck-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeckHandler_PutDeck(t *testing.T) {
	expected := &model.FlashcardDeck{
		ID:   "deck-1",
		Name: "Unit 1 (改)",
		Questions: []model.DeckQuestion{
			{Question: "apple", Answer: "りんご"},
		},
	}

	router, mockService := newDeckTestRouter(t)
	mockService.On("UpdateDeck", mock.Anything, "deck-1", mock.AnythingOfType("*model.FlashcardDeck")).
		Return(expected, nil).Once()

	body, err := json.Marshal(map[string]any{
		"name": "Unit 1 (改)",
		"questions": []map[string]any{
			{"question": "apple", "answer": "りんご"},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/flashcards/deck-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got model.FlashcardDeck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Unit 1 (改)", got.Name)
}
