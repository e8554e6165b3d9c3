package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/modu-ai/cfbuilder/internal/config"
	"github.com/modu-ai/cfbuilder/internal/defs"
	"github.com/modu-ai/cfbuilder/internal/validate"
	"github.com/modu-ai/cfbuilder/pkg/models"
)

// setupDeps wires dependencies against a fresh workspace and forces
// headless output. Tests using it must not run in parallel.
func setupDeps(t *testing.T) string {
	t.Helper()
	t.Setenv(config.EnvConfigDir, "")
	t.Setenv(config.EnvProject, "")
	t.Setenv(config.EnvFolder, "")

	root := t.TempDir()
	if err := InitDependencies(DepsOptions{ProjectRoot: root, NoColor: true}); err != nil {
		t.Fatalf("InitDependencies: %v", err)
	}
	deps.Headless.ForceHeadless(true)
	t.Cleanup(func() { SetDeps(nil) })
	return root
}

// runCLI executes a fresh command tree with args.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

const authorYAML = `name: Author
projectName: news
folderName: News CF
fields:
  - name: headline
    type: text-single
    validation: required
  - name: color
    type: enumeration
    options: [Red, Blue]
`

func TestRootCmd_Subcommands(t *testing.T) {
	want := map[string]bool{"create": false, "validate": false, "preview": false, "config": false}
	for _, cmd := range newRootCmd().Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("%s should be registered as a subcommand of root", name)
		}
	}
}

func TestCreateCmd_HasFlags(t *testing.T) {
	cmd := newCreateCmd()
	for _, name := range []string{"file", "name", "project", "folder", "field", "dry-run", "non-interactive"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("create command should have --%s flag", name)
		}
	}
}

func TestCreate_FromFlags(t *testing.T) {
	setupDeps(t)
	dest := t.TempDir()

	stdout, stderr, err := runCLI(t, "create", dest,
		"--name", "Author",
		"--project", "news",
		"--folder", "News CF",
		"--field", "headline:text-single:required",
		"--field", "body:text-multi",
		"--non-interactive",
	)
	if err != nil {
		t.Fatalf("create error = %v (stderr: %s)", err, stderr)
	}

	modelDir := filepath.Join(dest, "News CF", "settings", "dam", "cfm", "models", "author")
	body, err := os.ReadFile(filepath.Join(modelDir, defs.ContentXML))
	if err != nil {
		t.Fatalf("model descriptor not written: %v", err)
	}
	if !strings.Contains(string(body), `name="headline"`) || !strings.Contains(string(body), `required="on"`) {
		t.Errorf("model descriptor missing headline field:\n%s", body)
	}

	if !strings.Contains(stdout, "Content Fragment Model 'Author' created successfully at: "+modelDir) {
		t.Errorf("stdout missing success line:\n%s", stdout)
	}
	if !strings.Contains(stderr, "[6/6] author/.content.xml") {
		t.Errorf("stderr missing progress lines:\n%s", stderr)
	}
}

func TestCreate_FromFileAppliesConfigDefaults(t *testing.T) {
	setupDeps(t)
	dest := t.TempDir()
	file := filepath.Join(t.TempDir(), "req.json")
	writeFile(t, file, `{"name": "Event", "fields": [{"name": "when", "type": "date"}]}`)

	if _, stderr, err := runCLI(t, "create", dest, "--file", file); err != nil {
		t.Fatalf("create error = %v (stderr: %s)", err, stderr)
	}

	descriptor := filepath.Join(dest, config.DefaultFolder, "settings", "dam", "cfm", "models", "event", defs.ContentXML)
	body, err := os.ReadFile(descriptor)
	if err != nil {
		t.Fatalf("model descriptor not written: %v", err)
	}
	if !strings.Contains(string(body), "/conf/"+config.DefaultProject+"/settings/dam/cfm/models/event/jcr:content/model") {
		t.Errorf("scaffolding path should use the default project:\n%s", body)
	}
}

func TestCreate_DryRun(t *testing.T) {
	setupDeps(t)
	dest := t.TempDir()
	file := filepath.Join(t.TempDir(), "author.yaml")
	writeFile(t, file, authorYAML)

	stdout, stderr, err := runCLI(t, "create", dest, "-f", file, "--dry-run")
	if err != nil {
		t.Fatalf("create --dry-run error = %v", err)
	}
	if stderr != "Planning Author\n" {
		t.Errorf("headless spinner output = %q", stderr)
	}
	if !strings.Contains(stdout, "No files were written") || !strings.Contains(stdout, "author") {
		t.Errorf("unexpected dry run output:\n%s", stdout)
	}
	if n := strings.Count(stdout, ".content.xml"); n != 6 {
		t.Errorf("dry run listed %d descriptors, want 6:\n%s", n, stdout)
	}
	if !strings.Contains(stdout, filepath.Join(dest, "News CF", ".content.xml")) {
		t.Errorf("dry run paths should be absolute under %s:\n%s", dest, stdout)
	}

	entries, _ := os.ReadDir(dest)
	if len(entries) != 0 {
		t.Errorf("dry run wrote %d entries", len(entries))
	}
}

func TestCreate_InvalidModelName(t *testing.T) {
	setupDeps(t)
	dest := t.TempDir()

	_, _, err := runCLI(t, "create", dest, "--name", "My Model!", "--field", "a:number")
	if !errors.Is(err, validate.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != validate.MsgModelNameFormat {
		t.Errorf("error = %q", err.Error())
	}
	entries, _ := os.ReadDir(dest)
	if len(entries) != 0 {
		t.Error("an invalid request must not write anything")
	}
}

func TestCreate_BadFieldFlag(t *testing.T) {
	setupDeps(t)
	_, _, err := runCLI(t, "create", t.TempDir(), "--name", "m", "--field", "justaname")
	if err == nil || !strings.Contains(err.Error(), "name:type[:required]") {
		t.Errorf("expected --field format error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	setupDeps(t)
	file := filepath.Join(t.TempDir(), "author.yaml")
	writeFile(t, file, authorYAML)

	stdout, _, err := runCLI(t, "validate", "--file", file)
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.HasPrefix(stdout, "OK") {
		t.Errorf("stdout = %q, want OK prefix", stdout)
	}

	_, _, err = runCLI(t, "validate", "--file", file, "--field", "1bad:text-single")
	if err == nil || err.Error() != "Field name '1bad' must start with a letter and contain only letters, numbers, hyphens or underscores" {
		t.Errorf("validate error = %v", err)
	}
}

func TestPreview_JSON(t *testing.T) {
	setupDeps(t)

	stdout, _, err := runCLI(t, "preview", "--name", "Author", "--field", "headline:text-single", "--format", "json")
	if err != nil {
		t.Fatalf("preview error = %v", err)
	}

	var req models.Request
	if err := json.Unmarshal([]byte(stdout), &req); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if req.ProjectName != config.DefaultProject || req.FolderName != config.DefaultFolder {
		t.Errorf("defaults not applied: %+v", req)
	}
	if len(req.Fields) != 1 || req.Fields[0].Name != "headline" {
		t.Errorf("fields = %+v", req.Fields)
	}
}

func TestPreview_XML(t *testing.T) {
	setupDeps(t)
	file := filepath.Join(t.TempDir(), "author.yaml")
	writeFile(t, file, authorYAML)

	stdout, _, err := runCLI(t, "preview", "--file", file, "--format", "xml")
	if err != nil {
		t.Fatalf("preview error = %v", err)
	}
	for _, want := range []string{
		"<!-- News CF/.content.xml -->",
		"<!-- News CF/settings/dam/cfm/models/author/.content.xml -->",
		`options="Red,Blue"`,
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("xml preview missing %q", want)
		}
	}
}

func TestPreview_MarkdownSanitizesText(t *testing.T) {
	setupDeps(t)
	file := filepath.Join(t.TempDir(), "req.yaml")
	writeFile(t, file, `name: Author
fields:
  - name: headline
    type: text-single
    label: "<script>alert(1)</script>Headline"
`)

	stdout, stderr, err := runCLI(t, "preview", "--file", file)
	if err != nil {
		t.Fatalf("preview error = %v", err)
	}
	if stderr != "Planning Author\nRendering preview\n" {
		t.Errorf("headless spinner output = %q", stderr)
	}
	if !strings.Contains(stdout, "Author") || !strings.Contains(stdout, "Headline") {
		t.Errorf("markdown preview missing model data:\n%s", stdout)
	}
	if strings.Contains(stdout, "<script>") {
		t.Errorf("markup should be stripped:\n%s", stdout)
	}
}

func TestPreview_InvalidFormat(t *testing.T) {
	setupDeps(t)
	_, _, err := runCLI(t, "preview", "--name", "m", "--field", "a:number", "--format", "html")
	if err == nil || !strings.Contains(err.Error(), "invalid --format") {
		t.Errorf("expected format error, got %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	root := setupDeps(t)

	if _, _, err := runCLI(t, "config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	builder := filepath.Join(root, defs.ConfigDir, "config", "sections", defs.BuilderYAML)
	if _, err := os.Stat(builder); err != nil {
		t.Fatalf("builder section not written: %v", err)
	}

	if _, _, err := runCLI(t, "config", "init"); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second init should refuse to overwrite, got %v", err)
	}
	if _, _, err := runCLI(t, "config", "init", "--force"); err != nil {
		t.Errorf("config init --force error = %v", err)
	}

	stdout, _, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"default_project: myproject", "builder=file", "log_level: info"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigShowSection(t *testing.T) {
	setupDeps(t)

	stdout, _, err := runCLI(t, "config", "show", "--section", "system")
	if err != nil {
		t.Fatalf("config show --section error = %v", err)
	}
	if !strings.Contains(stdout, "system:") || !strings.Contains(stdout, "log_level: info") {
		t.Errorf("system section missing:\n%s", stdout)
	}
	if strings.Contains(stdout, "default_project") {
		t.Errorf("builder keys should not be printed:\n%s", stdout)
	}

	_, _, err = runCLI(t, "config", "show", "--section", "llm")
	if !errors.Is(err, config.ErrSectionNotFound) {
		t.Errorf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestConfigInitAppliesEnvOverrides(t *testing.T) {
	setupDeps(t)
	t.Setenv(config.EnvProject, "from-env")

	if _, _, err := runCLI(t, "config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if got := deps.Config.Get().Builder.DefaultProject; got != "from-env" {
		t.Errorf("DefaultProject after init = %q, want from-env", got)
	}
	if !deps.Config.LoadedSections()["builder"] {
		t.Error("builder section should be reported as loaded from file after init")
	}
}

func TestParseFieldFlag(t *testing.T) {
	tests := []struct {
		raw     string
		want    models.FieldSpec
		wantErr bool
	}{
		{raw: "headline:text-single", want: models.FieldSpec{Name: "headline", Type: models.FieldTextSingle}},
		{raw: "headline:text-single:required", want: models.FieldSpec{Name: "headline", Type: models.FieldTextSingle, Required: true}},
		{raw: "n:number:Optional", want: models.FieldSpec{Name: "n", Type: models.FieldNumber}},
		{raw: "headline", wantErr: true},
		{raw: "a:b:c:d", wantErr: true},
		{raw: "a:number:maybe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseFieldFlag(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFieldFlag(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); !tt.wantErr && diff != "" {
				t.Errorf("parseFieldFlag(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestLoadRequestFile_RejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()

	jsonFile := filepath.Join(dir, "req.json")
	writeFile(t, jsonFile, `{"name": "m", "colour": "red"}`)
	if _, err := loadRequestFile(jsonFile); err == nil {
		t.Error("unknown JSON keys should be rejected")
	}

	yamlFile := filepath.Join(dir, "req.yml")
	writeFile(t, yamlFile, "name: m\ncolour: red\n")
	if _, err := loadRequestFile(yamlFile); err == nil {
		t.Error("unknown YAML keys should be rejected")
	}

	if _, err := loadRequestFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("a missing file should be an error")
	}
}

func TestInitDependencies_VerboseLogsConfigLoading(t *testing.T) {
	t.Setenv(config.EnvConfigDir, "")
	t.Setenv(config.EnvLogLevel, "debug")
	t.Cleanup(func() { SetDeps(nil) })

	var buf bytes.Buffer
	err := InitDependencies(DepsOptions{ProjectRoot: t.TempDir(), Verbose: true, NoColor: true, LogWriter: &buf})
	if err != nil {
		t.Fatalf("InitDependencies: %v", err)
	}
	if !strings.Contains(buf.String(), "config sections directory not found") {
		t.Errorf("configuration loading should be logged under --verbose, got %q", buf.String())
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	sys := config.SystemConfig{LogLevel: "debug", LogFormat: "json"}

	newLogger(sys, false, &buf).Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("non-verbose logger wrote %q", buf.String())
	}

	newLogger(sys, true, &buf).Debug("shown", "k", "v")
	if !strings.Contains(buf.String(), `"msg":"shown"`) {
		t.Errorf("verbose JSON logger output = %q", buf.String())
	}

	buf.Reset()
	newLogger(config.SystemConfig{LogLevel: "warn"}, true, &buf).Info("filtered")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := loadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("a missing .env should be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "CFBUILDER_TEST_ENV_VALUE=from-file\n")
	t.Cleanup(func() { _ = os.Unsetenv("CFBUILDER_TEST_ENV_VALUE") })

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}
	if got := os.Getenv("CFBUILDER_TEST_ENV_VALUE"); got != "from-file" {
		t.Errorf("env value = %q", got)
	}
}
