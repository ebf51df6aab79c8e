package cmdlang

// HelpExamples returns sample commands shown by the palette's help items and
// indexed as keywords on the synthetic create item.
func HelpExamples() []string {
	return []string{
		`+ character Alice --tag 主角 --age 24 --importance 5 --role protagonist --identity "graduate student" --trait calm --trait reserved`,
		`+ character Bob --rel target=Alice,type=rival --arc beat=1 goal=revenge`,
		`+ world "Old Town Bridge" --tag location --type location --atmosphere desolate`,
		`+ style "Cold Realism" --lock pov --lock tense --max_examples 5 --max_chars 800`,
		`+ blueprint "Three Act Test" --story_type three_act --scenes 3`,
		`+ chapter "Chapter One" --bind blueprint_001 --scene 0 --signals`,
		`+ project MyNovel`,
		`pin tech "iceberg theory" high --weight 0.8 --note "keep it subtle"`,
		`unpin category structure`,
		`list pinned techniques`,
	}
}
