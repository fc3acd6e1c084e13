package xtask

import (
	"context"

	"github.com/rotisserie/eris"
)

type Book string

const (
	BurnBook        Book = "burn"
	ContributorBook Book = "contributor"
)

var Books = []string{string(BurnBook), string(ContributorBook)}

type BookCommand string

const (
	BookBuild BookCommand = "build"
	BookOpen  BookCommand = "open"
	BookTest  BookCommand = "test"
)

var BookCommands = []string{string(BookBuild), string(BookOpen), string(BookTest)}

type BooksArgs struct {
	Book    Book
	Command BookCommand
}

func (c Config) bookDir(book Book) (string, error) {
	switch book {
	case BurnBook:
		return c.BurnBook, nil
	case ContributorBook:
		return c.ContributorBook, nil
	}

	return "", eris.Errorf("Unknown book %s, expected one of %v", book, Books)
}

// HandleBooks builds, serves or tests one of the mdbook books.
func HandleBooks(ctx context.Context, tc Toolchain, cfg Config, args BooksArgs) error {
	dir, err := cfg.bookDir(args.Book)
	if err != nil {
		return err
	}

	switch args.Command {
	case BookBuild:
		return tc.Mdbook(ctx, dir, "build")
	case BookOpen:
		return tc.Mdbook(ctx, dir, "serve", "--open")
	case BookTest:
		return tc.Mdbook(ctx, dir, "test")
	}

	return eris.Errorf("Unknown book command %s, expected one of %v", args.Command, BookCommands)
}
