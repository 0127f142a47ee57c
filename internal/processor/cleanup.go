package processor

import (
	"context"
	"os"
	"path/filepath"
)

// moveTo moves the source file into dir, logging instead of failing so the
// processing result is never lost over a rename.
func (p *implProcessor) moveTo(ctx context.Context, srcPath, dir string) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		p.logger.Warn(ctx, "Failed to create %s: %v", dir, err)
		return
	}

	destPath := filepath.Join(dir, filepath.Base(srcPath))
	p.logger.Info(ctx, "Moving source: %s -> %s", srcPath, destPath)

	if err := os.Rename(srcPath, destPath); err != nil {
		p.logger.Warn(ctx, "Failed to move %s: %v", srcPath, err)
	}
}
