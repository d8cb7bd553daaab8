package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

func TestClient_Fetch(t *testing.T) {
	tests := []struct {
		name              string
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		wantBooks []domain.Book
		wantErr   error
		wantError bool
	}{
		{
			name: "maps catalog entries",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/books.json", r.URL.Path)

				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode([]Work{
					{
						ISBN:             "9780441013593",
						Title:            "Dune",
						Authors:          []Author{{Name: "Frank Herbert"}, {Name: "Someone Else"}},
						FirstPublishYear: 1965,
						Pages:            412,
						Subject:          []string{"Science fiction", "Deserts", "Ecology", "Politics"},
					},
				})
			},
			wantBooks: []domain.Book{
				{
					ID:          "9780441013593",
					Title:       "Dune",
					Author:      "Frank Herbert",
					Published:   "1965",
					Pages:       412,
					Description: "Science fiction, Deserts, Ecology",
				},
			},
		},
		{
			name: "fills defaults and derives ids",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[{"title":"Anonymous Poems"},{"title":"  "}]`))
			},
			wantBooks: []domain.Book{
				domain.Book{
					Title:       "Anonymous Poems",
					Author:      UnknownAuthor,
					Published:   UnknownDate,
					Description: NoDescription,
				}.WithID(),
			},
		},
		{
			name: "server error",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantError: true,
		},
		{
			name: "empty catalog",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[]`))
			},
			wantErr:   ErrEmptyCatalog,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			client := NewClient(server.URL+"/api/books.json", 5*time.Second)
			defer func() { _ = client.Close() }()

			books, err := client.Fetch(context.Background())
			if tt.wantError {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBooks, books)
		})
	}
}

func TestClient_FetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 50*time.Millisecond)
	defer func() { _ = client.Close() }()

	_, err := client.Fetch(context.Background())
	require.Error(t, err)
}

func TestMapWorksDerivedIDIsStable(t *testing.T) {
	works := []Work{{Title: "Emma", Authors: []Author{{Name: "Jane Austen"}}, FirstPublishYear: 1815}}

	first := MapWorks(works)
	second := MapWorks(works)

	require.Len(t, first, 1)
	assert.NotEmpty(t, first[0].ID)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, "Emma_Jane Austen_1815", first[0].Key())
}
