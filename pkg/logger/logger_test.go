package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/premium-estimator/pkg/logger"
)

var _ = Describe("Logger", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	Describe("New", func() {
		It("should create logger with info level", func() {
			log := logger.New(logger.ParseLevel("info"), false, "dev", buf)
			Expect(log).NotTo(BeNil())

			Expect(log.Enabled(context.Background(), slog.LevelInfo)).To(BeTrue())
			Expect(log.Enabled(context.Background(), slog.LevelDebug)).To(BeFalse())
		})

		It("should respect debug level", func() {
			log := logger.New(logger.ParseLevel("debug"), false, "dev", buf)

			Expect(log.Enabled(context.Background(), slog.LevelDebug)).To(BeTrue())
			Expect(log.Enabled(context.Background(), slog.LevelInfo)).To(BeTrue())
		})

		It("should respect warn level", func() {
			log := logger.New(logger.ParseLevel("warn"), false, "dev", buf)

			Expect(log.Enabled(context.Background(), slog.LevelInfo)).To(BeFalse())
			Expect(log.Enabled(context.Background(), slog.LevelWarn)).To(BeTrue())
		})

		It("should respect error level", func() {
			log := logger.New(logger.ParseLevel("error"), false, "dev", buf)

			Expect(log.Enabled(context.Background(), slog.LevelWarn)).To(BeFalse())
			Expect(log.Enabled(context.Background(), slog.LevelError)).To(BeTrue())
		})

		It("should write JSON in prod", func() {
			log := logger.New(slog.LevelInfo, false, "prod", buf)
			log.Info("model loaded")

			var entry map[string]any
			Expect(json.Unmarshal(buf.Bytes(), &entry)).To(Succeed())
			Expect(entry["msg"]).To(Equal("model loaded"))
			Expect(entry["environment"]).To(Equal("prod"))
		})

		It("should write text outside prod", func() {
			log := logger.New(slog.LevelInfo, false, "dev", buf)
			log.Info("model loaded")

			Expect(buf.String()).To(ContainSubstring("msg=\"model loaded\""))
			Expect(buf.String()).To(ContainSubstring("environment=dev"))
		})

		It("should follow a level var changed at runtime", func() {
			level := new(slog.LevelVar)
			level.Set(slog.LevelWarn)
			log := logger.New(level, false, "dev", buf)

			Expect(log.Enabled(context.Background(), slog.LevelInfo)).To(BeFalse())
			level.Set(slog.LevelDebug)
			Expect(log.Enabled(context.Background(), slog.LevelDebug)).To(BeTrue())
		})
	})

	Describe("ParseLevel", func() {
		It("should default to info for invalid level", func() {
			Expect(logger.ParseLevel("invalid")).To(Equal(slog.LevelInfo))
		})

		It("should ignore case", func() {
			Expect(logger.ParseLevel("WARN")).To(Equal(slog.LevelWarn))
		})
	})

	Describe("NewRotatingWriter", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "logger-test-*")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			os.RemoveAll(tempDir)
		})

		It("should write log lines to the file", func() {
			path := filepath.Join(tempDir, "estimator.log")
			w := logger.NewRotatingWriter(logger.RotationConfig{Filename: path, MaxSizeMB: 1})

			log := logger.New(slog.LevelInfo, false, "prod", w)
			log.Info("server started")
			Expect(w.Close()).To(Succeed())

			content, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(content)).To(ContainSubstring("server started"))
		})
	})
})
