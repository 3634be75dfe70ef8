package services

import (
	"fmt"
	"log"

	"snap-report-api/config"
	"snap-report-api/models"
)

// Notifier mails administrators about new submissions. It is a best-effort
// side channel: a failed send is logged and never surfaces to the submitter.
type Notifier struct {
	to string
}

// NewNotifier returns a notifier, or nil when notifications are not
// configured (no recipient or no SMTP settings).
func NewNotifier(cfg *config.Config) *Notifier {
	if cfg.AdminNotifyEmail == "" || !config.MailConfigured() {
		return nil
	}
	return &Notifier{to: cfg.AdminNotifyEmail}
}

// NotifyNewSubmission sends a short summary mail for one submission.
func (n *Notifier) NotifyNewSubmission(sub models.Submission) {
	subject := fmt.Sprintf("新的随手拍提交 #%d", sub.ID)
	html := fmt.Sprintf(
		"<p>收到新的提交记录：</p>"+
			"<ul>"+
			"<li>ID: %d</li>"+
			"<li>姓名: %s</li>"+
			"<li>手机号: %s</li>"+
			"<li>图片: %d 张，视频: %d 个</li>"+
			"</ul>"+
			"<p>%s</p>",
		sub.ID, sub.Name, sub.Phone, len(sub.Images), len(sub.Videos), sub.Description)

	if err := config.SendMail([]string{n.to}, subject, html); err != nil {
		log.Printf("发送提交通知邮件失败: %v", err)
	}
}
