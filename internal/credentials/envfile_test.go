package credentials

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project", ".env")
	store := NewEnvFile(path, nil)

	assert.Equal(t, "", store.Load("anthropic"))
	require.True(t, store.Save("anthropic", "sk-ant-123"))
	require.True(t, store.Save("openai", "sk-openai-456"))
	assert.Equal(t, "sk-ant-123", store.Load("anthropic"))
	assert.Equal(t, "sk-openai-456", store.Load("OpenAI"))

	values, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ANTHROPIC_API_KEY": "sk-ant-123", "OPENAI_API_KEY": "sk-openai-456"}, values)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestEnvFilePreservesUnrelatedVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("AIHELP_DEFAULT_PROVIDER=gemini\nGEMINI_API_KEY=old\n"), 0o600))
	store := NewEnvFile(path, nil)

	require.True(t, store.Save("gemini", "new"))
	require.True(t, store.Delete("anthropic"))

	values, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", values["AIHELP_DEFAULT_PROVIDER"])
	assert.Equal(t, "new", values["GEMINI_API_KEY"])

	require.True(t, store.Delete("gemini"))
	require.True(t, store.Delete("gemini"))
	assert.Equal(t, "", store.Load("gemini"))
	assert.Equal(t, "", os.Getenv("GEMINI_API_KEY"))
}

func TestEnvFileUnreadableFileDegrades(t *testing.T) {
	dir := t.TempDir()
	store := NewEnvFile(dir, nil)

	assert.Equal(t, "", store.Load("openai"))
	assert.False(t, store.Save("openai", "sk"))
	assert.False(t, store.Delete("openai"))
}

func TestEnvFileConcurrentSaves(t *testing.T) {
	store := NewEnvFile(filepath.Join(t.TempDir(), ".env"), nil)
	providers := []string{"anthropic", "openai", "gemini", "mistral"}

	var wg sync.WaitGroup
	for _, p := range providers {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			assert.True(t, store.Save(p, "key-"+p))
		}(p)
	}
	wg.Wait()

	for _, p := range providers {
		assert.Equal(t, "key-"+p, store.Load(p))
	}
}

func TestEnvVariable(t *testing.T) {
	assert.Equal(t, "ANTHROPIC_API_KEY", EnvVariable("anthropic"))
	assert.Equal(t, "GEMINI_API_KEY", EnvVariable(" Gemini "))
	assert.Equal(t, "AZURE_OPENAI_API_KEY", EnvVariable("azure-openai"))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "*****", Mask("short"))
	assert.Equal(t, "************cdef", Mask("0123456789abcdef"))
}
