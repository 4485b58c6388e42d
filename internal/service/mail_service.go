package service

import (
	"eduhub_backend/internal/config"
	"eduhub_backend/pkg/logger"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

type mailJob struct {
	To      string
	Subject string
	HTML    string
}

// MailService 邮件发送走独立 goroutine，请求路径只入队不等待 SMTP
type MailService struct {
	Cfg   *config.MailConfig
	Base  string // 站点链接前缀
	queue chan mailJob
	done  chan struct{}
}

func NewMailService(cfg *config.Config) *MailService {
	s := &MailService{
		Cfg:   &cfg.Mail,
		Base:  cfg.Server.BaseURL,
		queue: make(chan mailJob, 64),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *MailService) run() {
	for job := range s.queue {
		if err := s.send(job); err != nil {
			logger.Log.Error("mail send failed",
				zap.String("to", job.To),
				zap.String("subject", job.Subject),
				zap.Error(err),
			)
		}
	}
	close(s.done)
}

// Stop 关闭队列并等待在途邮件发完
func (s *MailService) Stop() {
	close(s.queue)
	<-s.done
}

func (s *MailService) enqueue(job mailJob) {
	select {
	case s.queue <- job:
	default:
		// 队列满时丢弃，通知邮件不是关键路径
		logger.Log.Warn("mail queue full, dropping message",
			zap.String("to", job.To),
			zap.String("subject", job.Subject),
		)
	}
}

func (s *MailService) send(job mailJob) error {
	if !s.Cfg.Enabled {
		logger.Log.Info("mail disabled, skipping send",
			zap.String("to", job.To),
			zap.String("subject", job.Subject),
		)
		return nil
	}

	addr := fmt.Sprintf("%s:%d", s.Cfg.Host, s.Cfg.Port)
	auth := smtp.PlainAuth("", s.Cfg.Username, s.Cfg.Password, s.Cfg.Host)

	msg := []byte("From: EducationHub <" + s.Cfg.From + ">\r\n" +
		"To: " + job.To + "\r\n" +
		"Subject: " + job.Subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		job.HTML)

	return smtp.SendMail(addr, auth, s.Cfg.From, []string{job.To}, msg)
}

func displayName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}

func (s *MailService) SendWelcome(to, name string) {
	s.enqueue(mailJob{
		To:      to,
		Subject: "Welcome to EducationHub!",
		HTML: fmt.Sprintf(`<h2>Hi, %s!</h2>
<p>Thanks for signing up. You can now browse the catalog, enroll in courses,
track your learning progress and earn completion certificates.</p>
<p><a href="%s">Start learning</a></p>`, displayName(name), s.Base),
	})
}

func (s *MailService) SendPasswordReset(to, name, resetLink string) {
	s.enqueue(mailJob{
		To:      to,
		Subject: "Reset your EducationHub password",
		HTML: fmt.Sprintf(`<h2>Hi, %s!</h2>
<p>You requested a password reset. The link below is valid for one hour.
If you did not request this, ignore this message.</p>
<p><a href="%s">Reset password</a></p>`, displayName(name), resetLink),
	})
}

func (s *MailService) SendEnrollment(to, name, courseTitle string) {
	s.enqueue(mailJob{
		To:      to,
		Subject: fmt.Sprintf("You enrolled in %q", courseTitle),
		HTML: fmt.Sprintf(`<h2>Hi, %s!</h2>
<p>You are now enrolled in <strong>%s</strong>. Good luck!</p>`, displayName(name), courseTitle),
	})
}

func (s *MailService) SendCourseCompleted(to, name, courseTitle string) {
	s.enqueue(mailJob{
		To:      to,
		Subject: fmt.Sprintf("Congratulations! You completed %q", courseTitle),
		HTML: fmt.Sprintf(`<h2>Hi, %s!</h2>
<p>Great work! You finished <strong>%s</strong>.
Your certificate is ready in your dashboard.</p>`, displayName(name), courseTitle),
	})
}
