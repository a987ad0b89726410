package mailer

import "fmt"

// RegistrationCode Письмо с кодом для регистрации
func RegistrationCode(to, code string) Message {
	return Message{
		FromName: "Boss Rummy Support",
		To:       to,
		Subject:  "Boss Rummy - Your Verification Code",
		HTML:     fmt.Sprintf(`<div style="padding:20px; background:#f4f4f4; border-radius:10px;"><h2>OTP: %s</h2></div>`, code),
	}
}

// EmailChangeCode Письмо с кодом на новый адрес
func EmailChangeCode(to, code string) Message {
	return Message{
		FromName: "Boss Rummy Security",
		To:       to,
		Subject:  "Boss Rummy - Email Verification Code",
		HTML: fmt.Sprintf(`<div style="padding:40px; background:#00241d; color:white; border-radius:20px; text-align:center; font-family:sans-serif;">
  <h2 style="color:#fbbf24; text-transform:uppercase; letter-spacing:2px;">Verification Protocol</h2>
  <p style="opacity:0.8;">Enter the following code to verify your new identity:</p>
  <div style="background:#001a15; padding:20px; border-radius:15px; font-size:32px; font-weight:900; color:#fbbf24; margin:30px 0;">%s</div>
  <p style="font-size:12px; opacity:0.5;">This code expires in 10 minutes.</p>
</div>`, code),
	}
}
