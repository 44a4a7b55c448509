package panel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsbbezerra/santa-maria-panel/internal/api"
)

func newPanelServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	apiClient := api.NewClient(server.URL, server.Client(), discardLogger())

	return NewClient(apiClient, discardLogger()), server
}

func TestCreateNews_SendsMultipartWithDerivedMonth(t *testing.T) {
	var (
		gotPath   string
		gotFields map[string]string
		gotFile   string
	)

	client, _ := newPanelServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		require.NoError(t, r.ParseMultipartForm(1<<20))

		gotFields = make(map[string]string)
		for name, values := range r.MultipartForm.Value {
			gotFields[name] = values[0]
		}

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		gotFile = header.Filename

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Notícia criada com sucesso","id":"abc123"}`))
	})

	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)

	result, err := client.CreateNews(context.Background(), NewsCreate{
		Title:     "Prefeitura inaugura creche",
		Resume:    "Nova unidade no bairro Centro",
		Author:    "Assessoria",
		Date:      date,
		ImageCopy: "Foto: Assessoria",
		Text:      "<p>Texto completo</p>",
		Tag:       "educacao",
		Image:     FileUpload{Name: "capa.jpg", Reader: strings.NewReader("jpeg-bytes")},
	})
	require.NoError(t, err)

	assert.Equal(t, "/news", gotPath)
	assert.Equal(t, "abc123", result.ID)
	assert.Equal(t, "Notícia criada com sucesso", result.Message)
	assert.Equal(t, "março", gotFields["month"])
	assert.Equal(t, "2024", gotFields["year"])
	assert.Equal(t, "Prefeitura inaugura creche", gotFields["title"])
	assert.Equal(t, "capa.jpg", gotFile)
}

func TestCreateNews_RejectsIncompletePayloadBeforeWire(t *testing.T) {
	hit := false

	client, _ := newPanelServer(t, func(w http.ResponseWriter, r *http.Request) {
		hit = true
		w.WriteHeader(http.StatusOK)
	})

	_, err := client.CreateNews(context.Background(), NewsCreate{Title: "Sem imagem"})
	require.Error(t, err)
	assert.False(t, hit, "invalid payload must not reach the server")
}

func TestCreateVideo_ValidatesURL(t *testing.T) {
	client, _ := newPanelServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Vídeo adicionado"}`))
	})

	_, err := client.CreateVideo(context.Background(), "not a url")
	require.Error(t, err)

	result, err := client.CreateVideo(context.Background(), "https://www.youtube.com/embed/xyz")
	require.NoError(t, err)
	assert.Equal(t, "Vídeo adicionado", result.Message)
}

func TestCreateBanner_EmptyURLBecomesNone(t *testing.T) {
	var gotURL string

	client, _ := newPanelServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotURL = r.MultipartForm.Value["url"][0]

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Banner criado"}`))
	})

	_, err := client.CreateBanner(context.Background(), FileUpload{
		Name:   "banner.png",
		Reader: strings.NewReader("png-bytes"),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "none", gotURL)
}

func TestRemoveScheduleEvent_SendsRemainingEvents(t *testing.T) {
	var (
		gotPath string
		gotBody scheduleEventsReplace
	)

	client, _ := newPanelServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Agenda atualizada"}`))
	})

	day := ScheduleDay{
		ID: "d1",
		Events: []ScheduleEvent{
			{ID: "e1", Time: "09:00", Description: "Reunião com secretários"},
			{ID: "e2", Time: "14:00", Description: "Visita à obra"},
		},
	}

	_, err := client.RemoveScheduleEvent(context.Background(), day, "e1")
	require.NoError(t, err)

	assert.Equal(t, "/scheduleDel/d1", gotPath)
	require.Len(t, gotBody.Events, 1)
	assert.Equal(t, "e2", gotBody.Events[0].ID)
}

func TestCreateBid_AttachesEveryPDF(t *testing.T) {
	var gotFiles []string

	client, _ := newPanelServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		for _, header := range r.MultipartForm.File["pdf"] {
			gotFiles = append(gotFiles, header.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Licitação publicada"}`))
	})

	_, err := client.CreateBid(context.Background(), BidCreate{
		Title: "Pregão eletrônico 07/2024",
		Date:  time.Now(),
		PDFs: []FileUpload{
			{Name: "edital.pdf", Reader: strings.NewReader("pdf1")},
			{Name: "anexo-i.pdf", Reader: strings.NewReader("pdf2")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"edital.pdf", "anexo-i.pdf"}, gotFiles)
}

func TestAddNewsGallery_EnforcesImageLimit(t *testing.T) {
	client, _ := newPanelServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Galeria salva"}`))
	})

	_, err := client.AddNewsGallery(context.Background(), "abc", nil)
	require.Error(t, err)

	images := make([]FileUpload, maxGalleryImages+1)
	for i := range images {
		images[i] = FileUpload{Name: "foto.jpg", Reader: strings.NewReader("x")}
	}

	_, err = client.AddNewsGallery(context.Background(), "abc", images)
	require.Error(t, err)

	_, err = client.AddNewsGallery(context.Background(), "abc", images[:3])
	require.NoError(t, err)
}

func TestDecodeCollectionEnvelopes(t *testing.T) {
	news, err := DecodeNewsPage(json.RawMessage(`{"noticias":[{"_id":"n1","title":"T"}],"count":13}`))
	require.NoError(t, err)
	assert.Equal(t, 13, news.Count)
	require.Len(t, news.Items, 1)
	assert.Equal(t, "n1", news.Items[0].ID)

	bids, err := DecodeBids(json.RawMessage(`{"bid":[{"_id":"b1","pdf":["a.pdf"]}]}`))
	require.NoError(t, err)
	require.Len(t, bids, 1)
	assert.Equal(t, []string{"a.pdf"}, bids[0].Files)

	secretaries, err := DecodeSecretaries(json.RawMessage(`[{"_id":"s1","title":"Educação"}]`))
	require.NoError(t, err)
	require.Len(t, secretaries, 1)
	assert.Equal(t, "Educação", secretaries[0].Title)

	ordinances, err := DecodeOrdinancesPage(json.RawMessage(
		`{"ordinance":[{"_id":"o1","title":"Portaria 12/2024","secretary_id":"s1","file":"portaria-12.pdf"}],"count":25}`))
	require.NoError(t, err)
	assert.Equal(t, 25, ordinances.Count)
	require.Len(t, ordinances.Items, 1)
	assert.Equal(t, "o1", ordinances.Items[0].ID)
	assert.Equal(t, "portaria-12.pdf", ordinances.Items[0].File)

	_, err = DecodeNewsPage(json.RawMessage(`not json`))
	require.Error(t, err)
}

func TestOrdinancesKey(t *testing.T) {
	assert.Equal(t, "/ordinances/all/1", OrdinancesKey("", 1))
	assert.Equal(t, "/ordinances/s1/3", OrdinancesKey("s1", 3))
}

func TestMonthPTBR(t *testing.T) {
	assert.Equal(t, "janeiro", MonthPTBR(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "março", MonthPTBR(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "dezembro", MonthPTBR(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)))
}
