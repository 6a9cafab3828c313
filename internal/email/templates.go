package email

import (
	"fmt"
	"html"
)

// BuildVerificationBody renders the HTML body for the verification mail.
func BuildVerificationBody(name, link string) string {
	return fmt.Sprintf(`<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Welcome%s!</h2>
  <p>Thanks for creating an account. Please confirm your email address by
  clicking the button below. The link expires in one hour.</p>
  <p><a href="%s" style="display:inline-block;padding:10px 20px;background:#2d6cdf;color:#fff;text-decoration:none;border-radius:4px;">Verify email</a></p>
  <p>If the button does not work, copy this link into your browser:<br>%s</p>
  <p>If you did not create this account, you can ignore this message.</p>
</body>
</html>`, greeting(name), link, html.EscapeString(link))
}

// BuildPasswordResetBody renders the HTML body for the reset mail.
func BuildPasswordResetBody(name, link string) string {
	return fmt.Sprintf(`<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Password reset%s</h2>
  <p>We received a request to reset your password. The link below expires in
  one hour.</p>
  <p><a href="%s" style="display:inline-block;padding:10px 20px;background:#2d6cdf;color:#fff;text-decoration:none;border-radius:4px;">Reset password</a></p>
  <p>If the button does not work, copy this link into your browser:<br>%s</p>
  <p>If you did not request a reset, no action is needed.</p>
</body>
</html>`, greeting(name), link, html.EscapeString(link))
}

func greeting(name string) string {
	if name == "" {
		return ""
	}
	return ", " + html.EscapeString(name)
}
