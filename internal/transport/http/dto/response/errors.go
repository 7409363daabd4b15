package response

var (
	ErrProjectNotFound = ErrorResponse{
		Error: "Not found",
	}

	ErrArticleNotFound = ErrorResponse{
		Error: "Article not found",
	}

	ErrArticleRequiredFields = ErrorResponse{
		Error: "Title, category, and content are required",
	}
)
