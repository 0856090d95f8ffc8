package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jrsteele09/go-tenant-client/contracts"
	"github.com/jrsteele09/go-tenant-client/internal/utils"
	"github.com/jrsteele09/go-tenant-client/items"
	"github.com/jrsteele09/go-tenant-client/session"
	"github.com/jrsteele09/go-tenant-client/tenants"
	"github.com/jrsteele09/go-tenant-client/vendors"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func dash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func renderUser(w io.Writer, u *session.User) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Name:\t%s %s\n", utils.Value(u.FirstName), utils.Value(u.LastName))
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	fmt.Fprintf(tw, "Owner:\t%t\n", u.IsOwner)
	fmt.Fprintf(tw, "Tenant:\t%s (%s)\n", u.TenantName, u.TenantSubdomain)
	tw.Flush()
}

func renderSessions(w io.Writer, sessions []session.AuthSession) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTATUS\tCREATED\tEXPIRES")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Status,
			s.CreatedAt.Format("2006-01-02 15:04"), s.ExpiresAt.Format("2006-01-02 15:04"))
	}
	tw.Flush()
}

func renderVendors(w io.Writer, list []vendors.Vendor) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No vendors.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCONTACT\tEMAIL\tWEBSITE")
	for _, v := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", v.ID, v.Name, dash(v.ContactName), dash(v.ContactEmail), dash(v.Website))
	}
	tw.Flush()
}

func renderContracts(w io.Writer, list []contracts.Contract) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No contracts.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tVENDOR\tSTART\tEND\tOWNER\tTAGS")
	for _, c := range list {
		tags := make([]string, 0, len(c.Tags))
		for _, t := range c.Tags {
			tags = append(tags, t.Name)
		}
		tagCol := "-"
		if len(tags) > 0 {
			tagCol = strings.Join(tags, ",")
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n", c.ID, c.Title, c.ServiceProviderID,
			c.StartDate, dash(c.EndDate), dash(c.InternalOwner), tagCol)
	}
	tw.Flush()
}

func renderTags(w io.Writer, list []contracts.Tag) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No tags.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, t := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", t.ID, t.Name, dash(t.Description))
	}
	tw.Flush()
}

func renderTenantUsers(w io.Writer, list *tenants.UserList) {
	if list == nil || len(list.Users) == 0 {
		fmt.Fprintln(w, "No users.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLE\tOWNER\tACTIVE")
	for _, u := range list.Users {
		name := strings.TrimSpace(utils.Value(u.FirstName) + " " + utils.Value(u.LastName))
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\t%t\n", u.ID, u.Email, name, u.Role, u.IsOwner, u.IsActive)
	}
	tw.Flush()
	fmt.Fprintf(w, "Total: %d\n", list.Total)
}

func renderSettings(w io.Writer, s *tenants.Settings) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Display name:\t%s\n", dash(s.DisplayName))
	fmt.Fprintf(tw, "Logo URL:\t%s\n", dash(s.LogoURL))
	fmt.Fprintf(tw, "Theme keys:\t%d\n", len(s.ThemeSettings))
	fmt.Fprintf(tw, "Notification keys:\t%d\n", len(s.NotificationSettings))
	tw.Flush()
}

func renderItems(w io.Writer, list []items.Item) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No items.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, i := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i.ID, i.Name, dash(i.Description))
	}
	tw.Flush()
}
