package typegen_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/preppy/internal/adapters/typegen"
	"go.trai.ch/preppy/internal/core/domain"
	"go.trai.ch/preppy/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func typesTask(root, input, output string) *domain.BuildTask {
	return &domain.BuildTask{
		Target: domain.TargetNode,
		Format: domain.FormatTypes,
		Input:  input,
		Output: output,
		Root:   root,
	}
}

// emit simulates tsc writing a declaration file into --declarationDir.
func emit(name, content string) func(context.Context, string, []string, io.Writer) error {
	return func(_ context.Context, _ string, argv []string, _ io.Writer) error {
		dir := argv[len(argv)-1]
		return os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600)
	}
}

func TestExtractor_Extract(t *testing.T) {
	root := t.TempDir()
	task := typesTask(root, "src/index.ts", "dist/index.d.ts")

	ctrl := gomock.NewController(t)
	runner := mocks.NewMockToolRunner(ctrl)
	runner.EXPECT().
		Run(gomock.Any(), root, []string{
			"tsc", "src/index.ts",
			"--declaration", "--emitDeclarationOnly", "--skipLibCheck",
			"--declarationDir", filepath.Join(root, "dist"),
		}, gomock.Any()).
		DoAndReturn(emit("index.d.ts", "export declare const x = 1;\n"))

	res, err := typegen.NewExtractor(runner).Extract(t.Context(), task)
	require.NoError(t, err)
	require.Len(t, res.Outputs, 1)
	assert.Equal(t, "dist/index.d.ts", res.Outputs[0].Path)
	assert.Equal(t, len("export declare const x = 1;\n"), res.Outputs[0].Size)
}

func TestExtractor_RenamesToDeclaredPath(t *testing.T) {
	root := t.TempDir()
	task := typesTask(root, "src/main.tsx", "lib/types.d.ts")

	ctrl := gomock.NewController(t)
	runner := mocks.NewMockToolRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), root, gomock.Any(), gomock.Any()).
		DoAndReturn(emit("main.d.ts", "export {};\n"))

	_, err := typegen.NewExtractor(runner).Extract(t.Context(), task)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "lib", "types.d.ts"))
	assert.NoFileExists(t, filepath.Join(root, "lib", "main.d.ts"))
}

func TestExtractor_ToolFailure(t *testing.T) {
	root := t.TempDir()

	ctrl := gomock.NewController(t)
	runner := mocks.NewMockToolRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.ErrToolFailed)

	_, err := typegen.NewExtractor(runner).Extract(t.Context(), typesTask(root, "src/index.ts", "dist/index.d.ts"))
	require.ErrorIs(t, err, domain.ErrToolFailed)
}

func TestExtractor_NothingEmitted(t *testing.T) {
	root := t.TempDir()

	ctrl := gomock.NewController(t)
	runner := mocks.NewMockToolRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := typegen.NewExtractor(runner).Extract(t.Context(), typesTask(root, "src/index.ts", "dist/index.d.ts"))
	require.ErrorIs(t, err, domain.ErrTypesFailed)
}

func TestExtractor_RejectsJavaScript(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := typegen.NewExtractor(mocks.NewMockToolRunner(ctrl)).
		Extract(t.Context(), typesTask(t.TempDir(), "src/index.js", "dist/index.d.ts"))
	require.ErrorIs(t, err, domain.ErrTypesFailed)
}
