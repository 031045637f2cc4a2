package ports

import "context"

// StyleCompiler compiles a stylesheet dialect to plain CSS.
//
//go:generate mockgen -source=style_compiler.go -destination=mocks/mock_style_compiler.go -package=mocks
type StyleCompiler interface {
	// Compile reads src, resolves its imports and writes CSS to dest.
	Compile(ctx context.Context, src, dest string) error
}
