package service

import (
	"bytes"
	"context"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/repository"
	"course_academy_backend/internal/util"
	"course_academy_backend/pkg/logger"
	"course_academy_backend/pkg/monitoring"
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"gorm.io/gorm"
)

const (
	certificateWidth  = 1600
	certificateHeight = 1130
)

var (
	certificateInk    = color.NRGBA{R: 0x1f, G: 0x2a, B: 0x44, A: 0xff}
	certificateAccent = color.NRGBA{R: 0xb8, G: 0x86, B: 0x0b, A: 0xff}
	certificatePaper  = color.NRGBA{R: 0xfd, G: 0xfb, B: 0xf5, A: 0xff}
)

// CertificateArtifactService renders certificate documents and publishes them to storage.
type CertificateArtifactService struct {
	CertRepo   *repository.CertificateRepository
	CourseRepo *repository.CourseRepository
	UserRepo   *repository.UserRepository
	Storage    StorageProvider

	mu        sync.Mutex // font faces are not safe for concurrent use
	titleFace font.Face
	nameFace  font.Face
	bodyFace  font.Face
	smallFace font.Face
}

func NewCertificateArtifactService(
	certRepo *repository.CertificateRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	storage StorageProvider,
) (*CertificateArtifactService, error) {
	parsed, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := func(size float64) font.Face {
		return truetype.NewFace(parsed, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
	}

	return &CertificateArtifactService{
		CertRepo:   certRepo,
		CourseRepo: courseRepo,
		UserRepo:   userRepo,
		Storage:    storage,
		titleFace:  face(72),
		nameFace:   face(64),
		bodyFace:   face(36),
		smallFace:  face(24),
	}, nil
}

// Render draws the certificate as a PNG.
func (s *CertificateArtifactService) Render(cert *model.Certificate, courseTitle, learnerName string) (bytes.Buffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const w, h = float64(certificateWidth), float64(certificateHeight)
	dc := gg.NewContext(certificateWidth, certificateHeight)

	dc.SetColor(certificatePaper)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	dc.SetColor(certificateAccent)
	dc.SetLineWidth(12)
	dc.DrawRectangle(40, 40, w-80, h-80)
	dc.Stroke()
	dc.SetLineWidth(3)
	dc.DrawRectangle(70, 70, w-140, h-140)
	dc.Stroke()

	dc.SetColor(certificateInk)
	dc.SetFontFace(s.titleFace)
	dc.DrawStringAnchored("Certificate of Completion", w/2, 260, 0.5, 0.5)

	dc.SetFontFace(s.bodyFace)
	dc.DrawStringAnchored("This certifies that", w/2, 400, 0.5, 0.5)

	dc.SetFontFace(s.nameFace)
	dc.DrawStringAnchored(learnerName, w/2, 500, 0.5, 0.5)

	dc.SetColor(certificateAccent)
	dc.SetLineWidth(2)
	dc.DrawLine(w/2-400, 550, w/2+400, 550)
	dc.Stroke()

	dc.SetColor(certificateInk)
	dc.SetFontFace(s.bodyFace)
	dc.DrawStringAnchored("has successfully completed the course", w/2, 630, 0.5, 0.5)
	dc.DrawStringWrapped(courseTitle, w/2, 720, 0.5, 0.5, w-400, 1.4, gg.AlignCenter)

	dc.SetFontFace(s.smallFace)
	dc.DrawStringAnchored("Issued "+cert.IssuedAt.Format("2 January 2006"), w/2, 900, 0.5, 0.5)
	dc.DrawStringAnchored("Certificate No. "+cert.CertificateNumber, w/2, 950, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

// Generate renders and uploads the document for a certificate and records its
// URL. Certificates that already have a document are left alone.
func (s *CertificateArtifactService) Generate(ctx context.Context, certificateID string) error {
	cert, err := s.CertRepo.FindByID(ctx, certificateID)
	if err != nil {
		return util.NotFoundOr(err, util.ErrCertificateNotFound)
	}
	if cert.DownloadURL != "" {
		monitoring.CertificateArtifacts.WithLabelValues("skipped").Inc()
		return nil
	}

	course, err := s.CourseRepo.FindByID(ctx, cert.CourseID)
	if err != nil {
		return util.NotFoundOr(err, util.ErrCourseNotFound)
	}

	learnerName := cert.UserID
	user, err := s.UserRepo.FindByID(ctx, cert.UserID)
	switch {
	case err == nil && user.Name != "":
		learnerName = user.Name
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	buf, err := s.Render(cert, course.Title, learnerName)
	if err != nil {
		monitoring.CertificateArtifacts.WithLabelValues("failed").Inc()
		return err
	}

	key := fmt.Sprintf("certificates/%s/%s.png",
		util.SafeFilename(cert.UserID), util.SafeFilename(cert.CertificateNumber))
	url, err := s.Storage.Upload(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), util.MimePNG)
	if err != nil {
		monitoring.CertificateArtifacts.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to upload certificate: %w", err)
	}

	if err := s.CertRepo.SetDownloadURL(ctx, cert.ID, url); err != nil {
		monitoring.CertificateArtifacts.WithLabelValues("failed").Inc()
		return err
	}

	monitoring.CertificateArtifacts.WithLabelValues("rendered").Inc()
	logger.Log.Info("certificate artifact ready",
		zap.String("certificate_id", cert.ID),
		zap.String("url", url),
	)
	return nil
}
