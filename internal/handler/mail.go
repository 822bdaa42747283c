package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// mailQueue 与 cmd/mail 消费的队列名保持一致
const mailQueue = "email_queue"

// publishMail 把邮件任务投递到消息队列，由独立的 mail 进程异步发送
func (h *Handler) publishMail(msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		mailQueue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
