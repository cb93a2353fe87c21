package model

import "time"

// Certificate is issued once per (user, course). DownloadURL stays empty until
// the artifact generator has rendered and uploaded the document.
type Certificate struct {
	Base
	UserID            string    `gorm:"size:128;not null;uniqueIndex:idx_certificate_user_course" json:"userId"`
	CourseID          string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_certificate_user_course" json:"courseId"`
	CertificateNumber string    `gorm:"size:255;not null;uniqueIndex" json:"certificateNumber"`
	IssuedAt          time.Time `json:"issuedAt"`
	DownloadURL       string    `gorm:"size:512" json:"downloadUrl"`
}

func (Certificate) TableName() string {
	return "certificates"
}
