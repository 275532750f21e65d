package email

import "strconv"

// SendObituaryEmail tells the recipients that personID was eaten by
// zombieID.
func (c *Client) SendObituaryEmail(to []string, personID, zombieID int64) error {
	data := map[string]string{
		"PersonID": strconv.FormatInt(personID, 10),
		"ZombieID": strconv.FormatInt(zombieID, 10),
	}

	return c.SendEmail(
		to,
		"Someone was eaten in the garden",
		TemplateObituary,
		data,
	)
}
