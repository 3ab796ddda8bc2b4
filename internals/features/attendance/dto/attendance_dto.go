package dto

// MarkAttendanceRequest menandai kehadiran satu peserta pada satu tanggal.
type MarkAttendanceRequest struct {
	UserID  uint   `json:"userId" validate:"required"`
	Present *bool  `json:"present" validate:"required"`
	Date    string `json:"date"`
}

// RosterRow: satu baris daftar hadir (peserta + status absensi tanggal itu).
type RosterRow struct {
	UserID           uint   `json:"userId"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	EnrollmentStatus string `json:"enrollmentStatus"`
	AttendanceStatus string `json:"attendanceStatus"`
}

type SummaryRow struct {
	Date     string `json:"date"`
	Enrolled int64  `json:"enrolled"`
	Present  int64  `json:"present"`
	Absent   int64  `json:"absent"`
}

type AttendanceItem struct {
	ID         uint   `json:"attendanceId"`
	TrainingID uint   `json:"trainingId"`
	UserID     uint   `json:"userId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}
