package registry

// registerBuiltins registers all built-in NavReach node types.
// Called once by Global() during singleton initialization.
//
// Types without an Outputs schema either produce no variables or are
// legacy list-sourcing types whose variable set the scope resolver knows
// directly (lead_list, csv_import, scrape_list).
func registerBuiltins(r *Registry) {
	// Control
	r.Register(NodeTypeDef{Type: TypeStart, DisplayName: "Start", Category: "control", InputPorts: 0, OutputPorts: 1, Singleton: true})
	r.Register(NodeTypeDef{Type: TypeEnd, DisplayName: "End", Category: "control", InputPorts: 1, OutputPorts: 0, Singleton: true})
	r.Register(NodeTypeDef{Type: TypeLoop, DisplayName: "Loop", Category: "control", InputPorts: 1, OutputPorts: 2,
		Outputs: []OutputVar{
			{Label: "Current item", TemplateKey: "item", Example: "https://example.com/in/jane-doe"},
			{Label: "Iteration index", TemplateKey: "index", Example: "2"},
		}})
	r.Register(NodeTypeDef{Type: TypeCondition, DisplayName: "Condition", Category: "control", InputPorts: 1, OutputPorts: 2})
	r.Register(NodeTypeDef{Type: "sub_playbook", DisplayName: "Run Playbook", Category: "control", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "agent_decision", DisplayName: "Agent Decision", Category: "control", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Chosen action", TemplateKey: "action", Example: "send_message"},
			{Label: "Reasoning", TemplateKey: "reason", Example: "profile matches the target persona"},
		}})
	r.Register(NodeTypeDef{Type: "abort", DisplayName: "Abort Run", Category: "control", InputPorts: 1, OutputPorts: 0})

	// Timing
	r.Register(NodeTypeDef{Type: "wait", DisplayName: "Wait", Category: "timing", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "random_wait", DisplayName: "Random Wait", Category: "timing", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Waited seconds", TemplateKey: "seconds", Example: "17"},
		}})
	r.Register(NodeTypeDef{Type: "wait_for_element", DisplayName: "Wait for Element", Category: "timing", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "schedule_window", DisplayName: "Schedule Window", Category: "timing", InputPorts: 1, OutputPorts: 1})

	// Navigation
	r.Register(NodeTypeDef{Type: "navigate", DisplayName: "Navigate", Category: "navigation", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Page URL", TemplateKey: "page_url", Example: "https://example.com/feed"},
			{Label: "Page title", TemplateKey: "page_title", Example: "Home Feed"},
		}})
	r.Register(NodeTypeDef{Type: "open_profile", DisplayName: "Open Profile", Category: "navigation", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Profile name", TemplateKey: "profile_name", Example: "Jane Doe"},
			{Label: "Headline", TemplateKey: "profile_headline", Example: "VP Engineering at Acme"},
			{Label: "Profile URL", TemplateKey: "profile_url", Example: "https://example.com/in/jane-doe"},
			{Label: "Follower count", TemplateKey: "follower_count", Example: "4820"},
		}})
	r.Register(NodeTypeDef{Type: "open_post", DisplayName: "Open Post", Category: "navigation", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Post text", TemplateKey: "post_text", Example: "We just shipped v2 of our platform…"},
			{Label: "Post author", TemplateKey: "post_author", Example: "Jane Doe"},
			{Label: "Post URL", TemplateKey: "post_url", Example: "https://example.com/posts/123"},
			{Label: "Like count", TemplateKey: "like_count", Example: "231"},
		}})
	r.Register(NodeTypeDef{Type: "open_search", DisplayName: "Open Search", Category: "navigation", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Result count", TemplateKey: "result_count", Example: "87"},
		}})
	r.Register(NodeTypeDef{Type: "go_back", DisplayName: "Go Back", Category: "navigation", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "refresh", DisplayName: "Refresh Page", Category: "navigation", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "scroll", DisplayName: "Scroll", Category: "navigation", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "click", DisplayName: "Click Element", Category: "navigation", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "hover", DisplayName: "Hover Element", Category: "navigation", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "type_text", DisplayName: "Type Text", Category: "navigation", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "press_key", DisplayName: "Press Key", Category: "navigation", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "screenshot", DisplayName: "Screenshot", Category: "navigation", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Image path", TemplateKey: "image_path", Example: "/captures/run-42/step-7.png"},
		}})
	r.Register(NodeTypeDef{Type: "close_tab", DisplayName: "Close Tab", Category: "navigation", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "switch_tab", DisplayName: "Switch Tab", Category: "navigation", InputPorts: 1, OutputPorts: 1})

	// Data
	r.Register(NodeTypeDef{Type: "lead_list", DisplayName: "Lead List", Category: "data", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "csv_import", DisplayName: "CSV Import", Category: "data", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "scrape_list", DisplayName: "Scrape List", Category: "data", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "extract_text", DisplayName: "Extract Text", Category: "data", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Extracted text", TemplateKey: "text", Example: "Acme raises $40M Series B"},
		}})
	r.Register(NodeTypeDef{Type: "extract_attribute", DisplayName: "Extract Attribute", Category: "data", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Attribute value", TemplateKey: "value", Example: "https://cdn.example.com/avatar.png"},
		}})
	r.Register(NodeTypeDef{Type: "save_variable", DisplayName: "Save Variable", Category: "data", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Saved value", TemplateKey: "value", Example: "Jane"},
		}})
	r.Register(NodeTypeDef{Type: "http_request", DisplayName: "HTTP Request", Category: "data", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Response body", TemplateKey: "response_body", Example: `{"ok":true}`},
			{Label: "Status code", TemplateKey: "status_code", Example: "200"},
		}})
	r.Register(NodeTypeDef{Type: "filter_items", DisplayName: "Filter Items", Category: "data", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Kept count", TemplateKey: "kept_count", Example: "12"},
		}})
	r.Register(NodeTypeDef{Type: "dedupe_items", DisplayName: "Dedupe Items", Category: "data", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "export_csv", DisplayName: "Export CSV", Category: "data", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "File path", TemplateKey: "file_path", Example: "/exports/leads.csv"},
		}})
	r.Register(NodeTypeDef{Type: "enrich_profile", DisplayName: "Enrich Profile", Category: "data", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Email", TemplateKey: "email", Example: "jane@acme.com"},
			{Label: "Company", TemplateKey: "company", Example: "Acme"},
			{Label: "Title", TemplateKey: "title", Example: "VP Engineering"},
		}})

	// Social
	r.Register(NodeTypeDef{Type: "like_post", DisplayName: "Like Post", Category: "social", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "comment_post", DisplayName: "Comment on Post", Category: "social", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Comment URL", TemplateKey: "comment_url", Example: "https://example.com/posts/123#c-9"},
		}})
	r.Register(NodeTypeDef{Type: "repost", DisplayName: "Repost", Category: "social", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "follow_profile", DisplayName: "Follow Profile", Category: "social", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "unfollow_profile", DisplayName: "Unfollow Profile", Category: "social", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "connect_request", DisplayName: "Connection Request", Category: "social", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "withdraw_request", DisplayName: "Withdraw Request", Category: "social", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "send_message", DisplayName: "Send Message", Category: "social", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Message ID", TemplateKey: "message_id", Example: "msg_8841"},
		}})
	r.Register(NodeTypeDef{Type: "reply_message", DisplayName: "Reply to Message", Category: "social", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "visit_profile", DisplayName: "Visit Profile", Category: "social", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "endorse_skill", DisplayName: "Endorse Skill", Category: "social", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "view_story", DisplayName: "View Story", Category: "social", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "join_group", DisplayName: "Join Group", Category: "social", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "leave_group", DisplayName: "Leave Group", Category: "social", InputPorts: 1, OutputPorts: 1})
	r.Register(NodeTypeDef{Type: "post_update", DisplayName: "Post Update", Category: "social", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Post URL", TemplateKey: "post_url", Example: "https://example.com/posts/456"},
		}})

	// AI
	r.Register(NodeTypeDef{Type: "generate_text", DisplayName: "Generate Text", Category: "ai", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Generated text", TemplateKey: "text", Example: "Hi Jane, loved your post about…"},
		}})
	r.Register(NodeTypeDef{Type: "classify_text", DisplayName: "Classify Text", Category: "ai", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Label", TemplateKey: "label", Example: "interested"},
			{Label: "Confidence", TemplateKey: "confidence", Example: "0.92"},
		}})
	r.Register(NodeTypeDef{Type: "summarize_page", DisplayName: "Summarize Page", Category: "ai", InputPorts: 1, OutputPorts: 1,
		Outputs: []OutputVar{
			{Label: "Summary", TemplateKey: "summary", Example: "Acme is hiring across its platform team."},
		}})
}
