package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/roach88/socialgraph/internal/model"
	"github.com/roach88/socialgraph/internal/platform"
)

// messageResult acknowledges an operation that returns nothing.
type messageResult struct {
	Message string `json:"message"`
}

func (r messageResult) String() string { return r.Message }

// idResult reports the id allocated by a create operation.
type idResult struct {
	ID      int64  `json:"id"`
	Message string `json:"-"`
}

func (r idResult) String() string {
	return fmt.Sprintf("%s %d", r.Message, r.ID)
}

// textResult carries rendered post or tree text.
type textResult struct {
	Text string `json:"text"`
}

func (r textResult) String() string { return r.Text }

// accountList prints as a table of accounts in id order.
type accountList []model.Account

func (l accountList) String() string {
	if len(l) == 0 {
		return "No accounts."
	}
	return renderTable([]string{"ID", "Handle", "Description"}, func(table *tablewriter.Table) {
		for _, a := range l {
			table.Append([]string{strconv.FormatInt(int64(a.ID), 10), a.Handle, a.Description})
		}
	})
}

// statsResult prints the platform counts as a two-column table.
type statsResult struct {
	platform.Stats
	Posts int `json:"posts"`
}

func (r statsResult) String() string {
	mostPost, mostAccount := "-", "-"
	if r.MostEndorsedPost != nil {
		mostPost = strconv.FormatInt(int64(*r.MostEndorsedPost), 10)
	}
	if r.MostEndorsedAccount != nil {
		mostAccount = *r.MostEndorsedAccount
	}

	rows := [][]string{
		{"Accounts", strconv.Itoa(r.Accounts)},
		{"Original posts", strconv.Itoa(r.OriginalPosts)},
		{"Comments", strconv.Itoa(r.CommentPosts)},
		{"Endorsements", strconv.Itoa(r.EndorsementPosts)},
		{"Total posts", strconv.Itoa(r.Posts)},
		{"Most endorsed post", mostPost},
		{"Most endorsed account", mostAccount},
	}
	return renderTable([]string{"Metric", "Value"}, func(table *tablewriter.Table) {
		table.AppendBulk(rows)
	})
}

// seedResult reports what a seed file created.
type seedResult struct {
	Accounts []model.AccountID       `json:"accounts"`
	Posts    []model.PostID          `json:"posts"`
	Refs     map[string]model.PostID `json:"refs,omitempty"`
}

func (r seedResult) String() string {
	return fmt.Sprintf("seeded %d accounts and %d posts", len(r.Accounts), len(r.Posts))
}

func renderTable(header []string, fill func(table *tablewriter.Table)) string {
	out := &strings.Builder{}
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	fill(table)
	table.Render()
	return strings.TrimRight(out.String(), "\n")
}
