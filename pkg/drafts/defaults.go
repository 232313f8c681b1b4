package drafts

// DefaultHeader is the header partial shown to new visitors. It expects
// title and companyName, which the default body passes as include params.
const DefaultHeader = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title><%= title %></title>
</head>
<body style="margin: 0; padding: 0; background: #f4f4f5; font-family: Arial, sans-serif;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0">
  <tr>
    <td align="center" style="padding: 24px;">
      <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background: #ffffff; border-radius: 8px;">
        <tr>
          <td style="padding: 24px; border-bottom: 1px solid #e4e4e7;">
            <h1 style="margin: 0; font-size: 22px; color: #0066cc;"><%= companyName %></h1>
          </td>
        </tr>
        <tr>
          <td style="padding: 24px; color: #18181b; line-height: 1.5;">
`

// DefaultFooter closes the layout opened by DefaultHeader.
const DefaultFooter = `          </td>
        </tr>
        <tr>
          <td style="padding: 16px 24px; border-top: 1px solid #e4e4e7; color: #71717a; font-size: 12px;">
            <p style="margin: 0 0 8px;">&copy; <%= companyName %></p>
            <p style="margin: 0;">
              <a href="<%= unsubscribeUrl %>" style="color: #71717a;">Unsubscribe</a> |
              <a href="<%= privacyUrl %>" style="color: #71717a;">Privacy Policy</a>
            </p>
          </td>
        </tr>
      </table>
    </td>
  </tr>
</table>
</body>
</html>
`

// DefaultBody is the welcome email shown to new visitors.
const DefaultBody = `<%- include('./components/header', {
  title: 'Welcome Email',
  companyName: companyName
}) %>

<h2>Hello, <%= name %>!</h2>
<p>Welcome to our service. We're excited to have you on board.</p>
<p>Your account has been created with the email: <strong><%= email %></strong></p>
<a href="<%= actionUrl %>" style="display: inline-block; padding: 12px 24px; background: #0066cc; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0;">Get Started</a>
<p style="color: #666; font-size: 14px;">If you didn't request this, please ignore this email.</p>

<%- include('./components/footer') %>`

// DefaultData is the JSON data matching DefaultBody.
const DefaultData = `{
  "name": "John Doe",
  "email": "john@example.com",
  "actionUrl": "https://example.com/dashboard",
  "companyName": "My Company",
  "title": "Welcome Email",
  "unsubscribeUrl": "https://example.com/unsubscribe",
  "privacyUrl": "https://example.com/privacy"
}`

// Default returns the draft a new visitor starts with.
func Default() Draft {
	return Draft{
		Header:    DefaultHeader,
		Footer:    DefaultFooter,
		Body:      DefaultBody,
		Data:      DefaultData,
		Theme:     "system",
		CodeTheme: "system",
	}
}
