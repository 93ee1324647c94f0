package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/canonui/canon/pkg/behavior"
	"github.com/canonui/canon/pkg/store"
	"github.com/canonui/canon/pkg/vdom"
)

func TestRecover(t *testing.T) {
	err := Recover()(attachCtx("data-x"), func() error { panic("kaboom") })
	if !errors.Is(err, ErrPanic) {
		t.Fatalf("expected ErrPanic, got %v", err)
	}
	if !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("expected panic value in error, got %q", err)
	}

	if err := Recover()(attachCtx("data-x"), func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	mw := Logging(logger)

	_ = mw(attachCtx("data-ok"), func() error { return nil })
	_ = mw(attachCtx("data-bad"), func() error { return errors.New("boom") })

	out := buf.String()
	for _, want := range []string{"msg=attached", "attribute=data-ok", `msg="attach failed"`, "error=boom", "element_id=el-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestMiddlewareOnScanner(t *testing.T) {
	doc := vdom.NewDocument(
		vdom.Div(vdom.ID("a"), vdom.Marker("x")),
		vdom.Div(vdom.ID("b"), vdom.Marker("x")),
	)
	reg := behavior.NewRegistry(store.New(), behavior.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	reg.RegisterFunc("data-x", func(ctx behavior.AttachContext) error {
		if ctx.ElementID == "b" {
			panic("bad element")
		}
		return nil
	})

	var errs []error
	sc := behavior.NewScanner(reg, doc)
	sc.Use(
		func(ctx behavior.AttachContext, next func() error) error {
			err := next()
			if err != nil {
				errs = append(errs, err)
			}
			return err
		},
		Recover(),
	)
	if err := sc.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(errs) != 1 || !errors.Is(errs[0], ErrPanic) {
		t.Fatalf("expected outer middleware to observe one recovered panic, got %v", errs)
	}
	total, _ := sc.Totals()
	if total.Failed != 1 || total.Attached != 1 {
		t.Fatalf("unexpected totals: %+v", total)
	}
}
