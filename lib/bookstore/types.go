package bookstore

// --------------------------------------------------------------------------
// Catalog Types
// --------------------------------------------------------------------------

// Book is the immutable descriptive view of a catalog entry as returned to
// shop clients.
type Book struct {
	ISBN   int     `json:"isbn"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float32 `json:"price"`
}

// StockBook is the full stock-management view of a catalog entry. It is
// always a snapshot: mutating a returned StockBook never affects the catalog.
type StockBook struct {
	Book

	Copies      int  `json:"copies"`
	SaleMisses  int  `json:"sale_misses"`
	TimesRated  int  `json:"times_rated"`
	TotalRating int  `json:"total_rating"`
	EditorPick  bool `json:"editor_pick"`
}

// AverageRating returns the average rating of the book, or -1 if the book has
// never been rated. The sentinel keeps unrated books comparable (they sort
// below every rated book) without risking a divide by zero.
func (b StockBook) AverageRating() float32 {
	if b.TimesRated == 0 {
		return -1
	}
	return float32(b.TotalRating) / float32(b.TimesRated)
}

// BookCopy pairs an ISBN with a number of copies. It is used both for
// restocking (AddCopies) and for purchases (BuyBooks).
type BookCopy struct {
	ISBN   int `json:"isbn"`
	Copies int `json:"copies"`
}

// BookRating pairs an ISBN with a rating in [0, 5].
type BookRating struct {
	ISBN   int `json:"isbn"`
	Rating int `json:"rating"`
}

// EditorPick pairs an ISBN with the desired editor-pick flag value.
type EditorPick struct {
	ISBN int  `json:"isbn"`
	Pick bool `json:"pick"`
}
