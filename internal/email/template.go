package email

import "fmt"

// recoveryHTML renders the HTML alternative of the recovery-code email.
func recoveryHTML(code string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<style>
  body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; color: #333; line-height: 1.6; margin: 0; padding: 0; }
  .container { max-width: 500px; margin: 40px auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 12px; }
  .header { text-align: center; padding-bottom: 20px; border-bottom: 2px solid #f4f4f4; }
  .logo { font-size: 24px; font-weight: bold; color: #007bff; }
  .content { padding: 30px 10px; text-align: center; }
  .code-box { margin: 25px 0; padding: 20px; background-color: #f8f9fa; border-radius: 8px; border: 1px dashed #007bff; }
  .code { font-size: 35px; font-weight: bold; letter-spacing: 8px; color: #007bff; }
  .footer { font-size: 0.85em; color: #888; text-align: center; padding-top: 20px; border-top: 1px solid #f4f4f4; }
</style>
</head>
<body>
<div class="container">
  <div class="header"><div class="logo">MoveOn</div></div>
  <div class="content">
    <h2 style="margin-top: 0;">Forgot your password?</h2>
    <p>Use this one-time verification code to set a new password for your account.</p>
    <div class="code-box"><div class="code">%s</div></div>
    <p style="font-size: 0.9em; color: #666;">This code <strong>expires in 15 minutes</strong>.</p>
  </div>
  <div class="footer">
    <p>If you did not request this change, you can safely ignore this email.</p>
    <p>&copy; MoveOn App</p>
  </div>
</div>
</body>
</html>`, code)
}
