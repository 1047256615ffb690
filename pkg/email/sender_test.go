package email

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBodyFromHTML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.html"), []byte(`<p>{{.Title}}</p>`), 0o600))

	prev := TemplatesDir
	TemplatesDir = dir + "/"
	t.Cleanup(func() { TemplatesDir = prev })

	input := SendEmailInput{To: "a@example.com", Subject: "Hi"}
	require.NoError(t, input.GenerateBodyFromHTML("hello.html", struct{ Title string }{"<b>x</b>"}))

	assert.Equal(t, "<p>&lt;b&gt;x&lt;/b&gt;</p>", input.Body)
	assert.NoError(t, input.Validate())
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&SendEmailInput{Subject: "s", Body: "b"}).Validate())
	assert.Error(t, (&SendEmailInput{To: "a@example.com"}).Validate())
	assert.Error(t, (&SendEmailInput{To: "not-an-email", Subject: "s", Body: "b"}).Validate())
}
