package photostore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"bluerhyno/internal/errs"
)

// Local stores uploaded quote photos on a directory and hands back opaque
// references. References are generated names, never caller-supplied paths,
// which keeps traversal out of the reference space.
type Local struct {
	root string
}

func NewLocal(root string) (*Local, error) {
	if strings.TrimSpace(root) == "" {
		root = "./uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errs.Wrapf(err, "create photo root %q", root)
	}
	return &Local{root: root}, nil
}

func (s *Local) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	if ctx == nil {
		return "", errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", errs.Wrap(err, "check context")
	}
	if content == nil {
		return "", errors.New("content is required")
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	ref := uuid.NewString() + ext

	f, err := os.OpenFile(filepath.Join(s.root, ref), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errs.Wrapf(err, "create photo file %q", ref)
	}
	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(filepath.Join(s.root, ref))
		return "", errs.Wrapf(err, "write photo %q", ref)
	}
	if err := f.Close(); err != nil {
		return "", errs.Wrapf(err, "close photo %q", ref)
	}
	return ref, nil
}

func (s *Local) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := validateRef(ref); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.root, ref))
	if err != nil {
		return nil, errs.Wrapf(err, "open photo %q", ref)
	}
	return f, nil
}

func validateRef(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return errors.New("photo ref is required")
	}
	if strings.Contains(ref, "..") || strings.ContainsAny(ref, `/\`) {
		return fmt.Errorf("invalid photo ref %q", ref)
	}
	return nil
}
