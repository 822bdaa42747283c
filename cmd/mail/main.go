package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/config"
	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

// mailTemplates 邮件类型到模板文件和主题的映射
var mailTemplates = map[string]struct {
	file    string
	subject string
}{
	"create_user":          {"./templates/new_account_email.html", "在港值更系统 - 账户信息"},
	"reset_password":       {"./templates/reset_password_otp_email.html", "在港值更系统 - 重置密码"},
	"watch_bill_published": {"./templates/watch_bill_published_email.html", "在港值更系统 - 更表已发布"},
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法加载配置", "error", err)
		return
	}

	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("无法创建邮件客户端", "error", err)
		return
	}
	defer client.Close()

	// 先拨一次号确认 SMTP 配置可用，避免带着坏配置消费队列
	dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(dialCtx); err != nil {
		logger.Error("无法连接到邮件服务器", "error", err)
		return
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法创建通道", "error", err)
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare("email_queue", true, false, false, false, nil)
	if err != nil {
		logger.Error("无法声明队列", "error", err)
		return
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		logger.Error("无法消费消息", "error", err)
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, stop := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("收到消息", "message", string(msg.Body))
				if err := handleMessage(cfg, client, msg.Body); err != nil {
					logger.Error("邮件处理失败", "error", err)
					// 发送阶段的失败重新入队，其余都是坏消息，直接丢弃
					var sendErr *mail.SendError
					_ = msg.Nack(false, errors.As(err, &sendErr))
					continue
				}
				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("等待消息...（按 CTRL+C 退出）")
	<-sigChan

	logger.Info("正在关闭 mail worker...")
	stop()
	wg.Wait()
	logger.Info("mail worker 已成功关闭")
}

// handleMessage 反序列化一条队列消息并发出对应的邮件
func handleMessage(cfg *config.Config, client *mail.Client, body []byte) error {
	mailMessage := domain.MailMessage{}
	if err := json.Unmarshal(body, &mailMessage); err != nil {
		return fmt.Errorf("邮件信息反序列化失败: %w", err)
	}

	tpl, ok := mailTemplates[mailMessage.Type]
	if !ok {
		return fmt.Errorf("不支持的邮件类型 %q", mailMessage.Type)
	}

	m := mail.NewMsg()
	if err := m.From(cfg.Email.SMTP.Username); err != nil {
		return fmt.Errorf("无法设置发件人: %w", err)
	}
	if err := m.To(mailMessage.To); err != nil {
		return fmt.Errorf("无法设置收件人: %w", err)
	}

	tmpl, err := template.ParseFiles(tpl.file)
	if err != nil {
		return fmt.Errorf("无法解析邮件模板: %w", err)
	}
	if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
		return fmt.Errorf("无法设置邮件正文: %w", err)
	}
	m.Subject(tpl.subject)

	return client.DialAndSend(m)
}
