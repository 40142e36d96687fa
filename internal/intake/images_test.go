package intake

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	objmem "clinical-records/internal/adapters/objectstore/memory"
)

type testFile struct {
	name        string
	contentType string
	content     string
}

// buildFileHeaders arma *multipart.FileHeader reales parseando un form,
// que es como llegan desde el handler.
func buildFileHeaders(t *testing.T, files []testFile) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="imagen_`+string(rune('0'+i))+`"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(64 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	out := make([]*multipart.FileHeader, 0, len(files))
	for i := range files {
		fhs := form.File["imagen_"+string(rune('0'+i))]
		require.Len(t, fhs, 1)
		out = append(out, fhs[0])
	}
	return out
}

func TestIngest_UploadsInOrder(t *testing.T) {
	up := objmem.NewUploader()
	files := buildFileHeaders(t, []testFile{
		{name: "a.png", contentType: "image/png", content: "aaa"},
		{name: "b.jpg", contentType: "image/jpeg", content: "bbb"},
		{name: "c.webp", contentType: "image/webp", content: "ccc"},
	})

	urls, err := Ingest(context.Background(), up, "consultas/inicial", files)
	require.NoError(t, err)
	require.Len(t, urls, 3)

	uploads := up.Uploads()
	require.Len(t, uploads, 3)
	assert.Equal(t, "a.png", uploads[0].Filename)
	assert.Equal(t, "b.jpg", uploads[1].Filename)
	assert.Equal(t, "c.webp", uploads[2].Filename)
	for i, u := range uploads {
		assert.Equal(t, "consultas/inicial", u.Folder)
		assert.Equal(t, u.URL, urls[i])
	}
}

func TestIngest_NilAndEmptySkipped(t *testing.T) {
	up := objmem.NewUploader()
	files := buildFileHeaders(t, []testFile{
		{name: "a.png", contentType: "image/png", content: "aaa"},
		{name: "vacio.png", contentType: "image/png", content: ""},
	})
	// Hueco en medio: el índice 1 no mandó archivo.
	withGap := []*multipart.FileHeader{files[0], nil, files[1]}

	urls, err := Ingest(context.Background(), up, "pacientes", withGap)
	require.NoError(t, err)
	assert.Len(t, urls, 1)
	assert.Len(t, up.Uploads(), 1)
}

func TestIngest_InvalidTypeAbortsBeforeAnyUpload(t *testing.T) {
	up := objmem.NewUploader()
	files := buildFileHeaders(t, []testFile{
		{name: "a.png", contentType: "image/png", content: "aaa"},
		{name: "doc.pdf", contentType: "application/pdf", content: "bbb"},
	})

	_, err := Ingest(context.Background(), up, "pacientes", files)

	var typeErr *ImageTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, 1, typeErr.Index)
	// Nada llegó al object store, ni siquiera la imagen válida anterior.
	assert.Empty(t, up.Uploads())
}

func TestIngest_OversizeAbortsBeforeAnyUpload(t *testing.T) {
	up := objmem.NewUploader()
	files := buildFileHeaders(t, []testFile{
		{name: "ok.png", contentType: "image/png", content: "aaa"},
		{name: "grande.png", contentType: "image/png", content: strings.Repeat("x", MaxImageSize+1)},
	})

	_, err := Ingest(context.Background(), up, "pacientes", files)

	var sizeErr *ImageSizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, "grande.png", sizeErr.Filename)
	assert.Empty(t, up.Uploads())
}

func TestIngest_ExactLimitAllowed(t *testing.T) {
	up := objmem.NewUploader()
	files := buildFileHeaders(t, []testFile{
		{name: "justo.png", contentType: "image/png", content: strings.Repeat("x", MaxImageSize)},
	})

	urls, err := Ingest(context.Background(), up, "pacientes", files)
	require.NoError(t, err)
	assert.Len(t, urls, 1)
}

func TestIngest_UploadFailure(t *testing.T) {
	up := objmem.NewUploader()
	up.FailWith(errors.New("spaces caído"))
	files := buildFileHeaders(t, []testFile{
		{name: "a.png", contentType: "image/png", content: "aaa"},
	})

	_, err := Ingest(context.Background(), up, "pacientes", files)

	var upErr *ImageUploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "a.png", upErr.Filename)
}

func TestMarshalURLs(t *testing.T) {
	t.Run("vacío => nil", func(t *testing.T) {
		got, err := MarshalURLs(nil)
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = MarshalURLs([]string{})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("lista => arreglo JSON en orden", func(t *testing.T) {
		got, err := MarshalURLs([]string{"https://x/1.png", "https://x/2.png"})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.JSONEq(t, `["https://x/1.png","https://x/2.png"]`, *got)
	})
}
