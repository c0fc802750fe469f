package models

import (
	"fmt"
	"os"
	"strconv"

	"poshak-shop/utils"

	"gopkg.in/gomail.v2"
)

// EmailService mails the customer their order confirmation. SMTP settings
// come from the environment; when they are missing the shop runs with
// emails disabled.
type EmailService struct {
	dialer *gomail.Dialer
}

func NewEmailService() (*EmailService, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	dialer := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return &EmailService{dialer: dialer}, nil
}

func (s *EmailService) SendOrderConfirmationEmail(toEmail string, conf OrderConfirmation) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("অর্ডার নিশ্চিতকরণ #%s - পোশাক শপ", conf.OrderID))

	itemRows := ""
	for _, item := range conf.Items {
		itemRows += fmt.Sprintf(`<tr><td style="padding: 8px; border-bottom: 1px solid #eee;">%s × %d</td><td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">%s</td></tr>`,
			item.ProductName, item.Quantity, utils.FormatTaka(item.Price*item.Quantity))
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .header { text-align: center; margin-bottom: 30px; }
        .logo { font-size: 24px; font-weight: bold; color: #16a34a; }
        .order-box { background-color: #f0fdf4; padding: 20px; margin: 20px 0; border-radius: 8px; }
        .total-row { font-weight: bold; font-size: 18px; color: #16a34a; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">পোশাক শপ</div>
        </div>
        <h2 style="color: #333;">আপনার অর্ডার নিশ্চিত হয়েছে</h2>
        <p>%s, আপনাকে ধন্যবাদ!</p>

        <div class="order-box">
            <p><strong>অর্ডার নম্বর:</strong> %s</p>
            <table style="width: 100%%; border-collapse: collapse;">
                %s
                <tr><td style="padding: 8px;">ডেলিভারি চার্জ</td><td style="padding: 8px; text-align: right;">%s</td></tr>
                <tr class="total-row"><td style="padding: 8px;">সর্বমোট</td><td style="padding: 8px; text-align: right;">%s</td></tr>
            </table>
            <p><strong>ঠিকানা:</strong> %s</p>
            <p><strong>পেমেন্ট:</strong> ক্যাশ অন ডেলিভারি</p>
        </div>

        <p>পণ্য পৌঁছে দেওয়ার সময় আমরা আপনার সাথে ফোনে যোগাযোগ করব।</p>

        <div class="footer">
            <p>এটি একটি স্বয়ংক্রিয় ইমেইল। অনুগ্রহ করে উত্তর দেবেন না।</p>
        </div>
    </div>
</body>
</html>
	`, conf.CustomerName, conf.OrderID, itemRows, utils.FormatTaka(conf.DeliveryFee), utils.FormatTaka(conf.TotalAmount), conf.Address)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
