// Package seed fills a development database with demo accounts and the
// sample catalog.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	domain "library-backend/internal/domain/catalog"
	memberdomain "library-backend/internal/domain/member"
	"library-backend/internal/usecase/catalog"
	"library-backend/internal/usecase/member"

	"github.com/sirupsen/logrus"
)

// SampleBooks is the demo catalog, one copy each.
var SampleBooks = []catalog.BookInput{
	{Title: "To Kill a Mockingbird", Author: "Harper Lee", ISBN: "9780061120084", Genre: "Fiction", Year: "1960"},
	{Title: "1984", Author: "George Orwell", ISBN: "9780451524935", Genre: "Dystopian Fiction", Year: "1949"},
	{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: "9780743273565", Genre: "Classic Literature", Year: "1925"},
	{Title: "Pride and Prejudice", Author: "Jane Austen", ISBN: "9780141439518", Genre: "Romance", Year: "1813"},
	{Title: "The Catcher in the Rye", Author: "J.D. Salinger", ISBN: "9780316769488", Genre: "Fiction", Year: "1951"},

	{Title: "A Brief History of Time", Author: "Stephen Hawking", ISBN: "9780553380163", Genre: "Science", Year: "1988"},
	{Title: "Sapiens", Author: "Yuval Noah Harari", ISBN: "9780062316097", Genre: "History", Year: "2011"},
	{Title: "The Selfish Gene", Author: "Richard Dawkins", ISBN: "9780192860927", Genre: "Biology", Year: "1976"},
	{Title: "Cosmos", Author: "Carl Sagan", ISBN: "9780345331359", Genre: "Astronomy", Year: "1980"},

	{Title: "The 7 Habits of Highly Effective People", Author: "Stephen R. Covey", ISBN: "9780743269513", Genre: "Self-Help", Year: "1989"},
	{Title: "Thinking, Fast and Slow", Author: "Daniel Kahneman", ISBN: "9780374533557", Genre: "Psychology", Year: "2011"},
	{Title: "Atomic Habits", Author: "James Clear", ISBN: "9780735211292", Genre: "Self-Help", Year: "2018"},

	{Title: "The Girl with the Dragon Tattoo", Author: "Stieg Larsson", ISBN: "9780307269751", Genre: "Mystery", Year: "2005"},
	{Title: "Gone Girl", Author: "Gillian Flynn", ISBN: "9780307588364", Genre: "Thriller", Year: "2012"},
	{Title: "The Da Vinci Code", Author: "Dan Brown", ISBN: "9780307277671", Genre: "Mystery", Year: "2003"},

	{Title: "The Lord of the Rings", Author: "J.R.R. Tolkien", ISBN: "9780544003415", Genre: "Fantasy", Year: "1954"},
	{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Genre: "Science Fiction", Year: "1965"},
	{Title: "Harry Potter and the Philosopher's Stone", Author: "J.K. Rowling", ISBN: "9780747532699", Genre: "Fantasy", Year: "1997"},

	{Title: "Clean Code", Author: "Robert C. Martin", ISBN: "9780132350884", Genre: "Software Engineering", Year: "2008"},
	{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", ISBN: "9780201616224", Genre: "Software Engineering", Year: "1999"},
	{Title: "Introduction to Algorithms", Author: "Cormen et al.", ISBN: "9780262033848", Genre: "Computer Science", Year: "2009"},
	{Title: "Python Crash Course", Author: "Eric Matthes", ISBN: "9781593276034", Genre: "Programming", Year: "2015"},
}

// SampleMembers are extra borrower accounts next to the default users.
var SampleMembers = []member.RegisterInput{
	{Username: "ada", Password: "member123", FullName: "Ada Lovelace", Role: memberdomain.RoleMember},
	{Username: "alan", Password: "member123", FullName: "Alan Turing", Role: memberdomain.RoleMember},
	{Username: "grace", Password: "member123", FullName: "Grace Hopper", Role: memberdomain.RoleMember},
}

type Defaults interface {
	EnsureDefaults(ctx context.Context) error
}

type Deps struct {
	Books   domain.Repository
	Catalog *catalog.Usecase
	Members *member.Usecase
	Auth    Defaults
	Log     logrus.FieldLogger
}

type Options struct {
	// Reset deletes every book before seeding.
	Reset bool
}

type Result struct {
	Books   int
	Members int
}

// Run is safe to repeat: books are only inserted into an empty catalog and
// existing usernames are skipped.
func Run(ctx context.Context, d Deps, opts Options) (Result, error) {
	log := d.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	var res Result

	if err := d.Auth.EnsureDefaults(ctx); err != nil {
		return res, fmt.Errorf("default users: %w", err)
	}
	for _, in := range SampleMembers {
		_, err := d.Members.Register(ctx, in)
		if errors.Is(err, memberdomain.ErrUsernameTaken) {
			continue
		}
		if err != nil {
			return res, fmt.Errorf("member %s: %w", in.Username, err)
		}
		res.Members++
	}

	if opts.Reset {
		existing, err := d.Books.List(ctx)
		if err != nil {
			return res, fmt.Errorf("list books: %w", err)
		}
		for _, b := range existing {
			if err := d.Books.Delete(ctx, b.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
				return res, fmt.Errorf("delete book %d: %w", b.ID, err)
			}
		}
		log.WithField("deleted", len(existing)).Info("cleared catalog")
	}

	n, err := d.Books.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("count books: %w", err)
	}
	if n > 0 {
		log.WithField("books", n).Info("catalog not empty, skipping sample books")
		return res, nil
	}
	for _, in := range SampleBooks {
		if _, err := d.Catalog.Add(ctx, in); err != nil {
			return res, fmt.Errorf("book %q: %w", in.Title, err)
		}
		res.Books++
	}
	log.WithField("books", res.Books).WithField("members", res.Members).Info("seeded")
	return res, nil
}
