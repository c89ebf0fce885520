package notification

const bookingHTMLTemplate = `<html>
<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
  <div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 8px; padding: 30px; box-shadow: 0 2px 10px rgba(0,0,0,0.1);">
    <h2 style="color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px;">New Booking Notification</h2>
    <table style="width: 100%; border-collapse: collapse; margin-top: 15px;">
      <tr><td style="padding: 8px; font-weight: bold; color: #555;">Booking ID:</td><td style="padding: 8px;">#{{.BookingID}}</td></tr>
      <tr style="background-color: #f9f9f9;"><td style="padding: 8px; font-weight: bold; color: #555;">Tour:</td><td style="padding: 8px;">{{.TourTitle}}</td></tr>
      <tr><td style="padding: 8px; font-weight: bold; color: #555;">Customer:</td><td style="padding: 8px;">{{.CustomerName}}</td></tr>
      <tr style="background-color: #f9f9f9;"><td style="padding: 8px; font-weight: bold; color: #555;">Email:</td><td style="padding: 8px;">{{.CustomerEmail}}</td></tr>
      <tr><td style="padding: 8px; font-weight: bold; color: #555;">Phone:</td><td style="padding: 8px;">{{.CustomerPhone}}</td></tr>
      <tr style="background-color: #f9f9f9;"><td style="padding: 8px; font-weight: bold; color: #555;">Language:</td><td style="padding: 8px;">{{.Language}}</td></tr>
      <tr><td style="padding: 8px; font-weight: bold; color: #555;">Message:</td><td style="padding: 8px;">{{.Message}}</td></tr>
    </table>
    <div style="text-align: center; margin-top: 20px;">
      <a href="{{.TourURL}}" style="display: inline-block; padding: 12px 28px; background-color: #3498db; color: white; text-decoration: none; border-radius: 6px; font-weight: bold; font-size: 14px;">View Tour on Website</a>
    </div>
    <p style="color: #888; font-size: 12px; margin-top: 20px; text-align: center;">This notification was sent automatically by the Travel Agency booking system.</p>
  </div>
</body>
</html>
`

const bookingTextTemplate = `New Booking Notification

Booking ID: #{{.BookingID}}
Tour:       {{.TourTitle}}
Customer:   {{.CustomerName}}
Email:      {{.CustomerEmail}}
Phone:      {{.CustomerPhone}}
Language:   {{.Language}}
Message:    {{.Message}}

View tour: {{.TourURL}}
`
