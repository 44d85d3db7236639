package i18n

var tables = map[string]map[string]string{
	"en": {
		"app_title":        "Kajiboard",
		"nav_dashboard":    "Dashboard",
		"nav_tasks":        "Tasks",
		"nav_templates":    "Templates",
		"nav_rewards":      "Rewards",
		"nav_points":       "Points",
		"nav_menus":        "Menus",
		"nav_ingredients":  "Ingredients",
		"nav_meal_plans":   "Meal Plans",
		"nav_settings":     "Settings",
		"nav_order_sheet":  "Order Sheet",
		"login":            "Log in",
		"logout":           "Log out",
		"register":         "Create household",
		"join":             "Join household",
		"email":            "Email",
		"password":         "Password",
		"your_name":        "Your name",
		"household_name":   "Household name",
		"join_code":        "Join code",
		"regenerate_code":  "Regenerate code",
		"save":             "Save",
		"create":           "Create",
		"edit":             "Edit",
		"delete":           "Delete",
		"cancel":           "Cancel",
		"back":             "Back",
		"title":            "Title",
		"notes":            "Notes",
		"memo":             "Memo",
		"category":         "Category",
		"status":           "Status",
		"priority":         "Priority",
		"due_date":         "Due date",
		"due_time":         "Due time",
		"proposed_points":  "Proposed points",
		"actual_points":    "Actual points",
		"points":           "Points",
		"assignee":         "Assignee",
		"unassigned":       "Unassigned",
		"created_by":       "Created by",
		"order_number":     "No.",
		"action_claim":     "Claim",
		"action_start":     "Start",
		"action_complete":  "Complete",
		"action_approve":   "Approve",
		"action_cancel":    "Cancel",
		"new_task":         "New task",
		"from_template":    "From template",
		"instructions":     "Instructions",
		"upload_image":     "Upload image",
		"reward":           "Reward",
		"rewards":          "Rewards",
		"point_cost":       "Point cost",
		"request":          "Request",
		"approve":          "Approve",
		"reject":           "Reject",
		"requested_by":     "Requested by",
		"active":           "Active",
		"inactive":         "Inactive",
		"balance":          "Balance",
		"balances":         "Balances",
		"history":          "History",
		"adjust":           "Adjust",
		"amount":           "Amount",
		"description":      "Description",
		"contribution":     "Contribution rate",
		"recurring_rules":  "Recurring rules",
		"frequency":        "Frequency",
		"freq_daily":       "Daily",
		"freq_weekly":      "Weekly",
		"freq_monthly":     "Monthly",
		"next_run":         "Next run",
		"due_in_days":      "Due in (days)",
		"run_now":          "Run now",
		"ingredient":       "Ingredient",
		"ingredients":      "Ingredients",
		"unit":             "Unit",
		"quantity":         "Quantity",
		"dish_type":        "Dish type",
		"menu":             "Menu",
		"menus":            "Menus",
		"meal_set":         "Meal set",
		"meal_plan":        "Meal plan",
		"meal_plans":       "Meal plans",
		"start_date":       "Start date",
		"number_of_days":   "Number of days",
		"lunch":            "Lunch",
		"dinner":           "Dinner",
		"shopping_list":    "Shopping list",
		"generate_tasks":   "Generate meal tasks",
		"export":           "Export",
		"import":           "Import",
		"export_import":    "Export / Import",
		"language":         "Language",
		"theme":            "Theme",
		"font":             "Font",
		"appearance":       "Appearance",
		"household":        "Household",
		"members":          "Members",
		"admin":            "Admin",
		"name":             "Name",
		"day":              "Day",
		"days":             "Days",
		"add_row":          "Add row",
		"sort_order":       "Sort order",
		"unit_options":     "Unit options",
		"usage_count":      "Used in plans",
		"dish_types":       "Dish types",
		"meal_sets":        "Meal sets",
		"profile":          "Profile",
		"current_password": "Current password",
		"new_password":     "New password",
		"household_default": "Household default",
		"regenerate":       "Regenerate",
		"import_file":      "File to import",
		"nav_transfer":     "Export / Import",
		"lang_en":          "English",
		"lang_ja":          "Japanese",
		"theme_sakura":     "Sakura",
		"theme_mint":       "Mint",
		"theme_creamsicle": "Creamsicle",
		"theme_night":      "Night",
		"font_modern":      "Modern",
		"font_serif":       "Serif",
		"font_rounded":     "Rounded",
		"flash_saved":      "Saved.",
		"flash_created":    "Created.",
		"flash_deleted":    "Deleted.",
		"flash_requested":  "Reward requested.",
		"flash_approved":   "Approved.",
		"flash_rejected":   "Rejected.",
		"flash_imported":   "Import finished.",
		"flash_rules_run":  "Recurring rules executed.",
		"flash_meals_run":  "Meal tasks generated.",
		"err_login":        "Email or password is incorrect.",
		"err_join_code":    "No household matches that join code.",
		"err_email_taken":  "That email is already registered in this household.",
		"err_in_use":       "This item is still in use and cannot be deleted.",
		"err_invalid":      "Invalid input.",
		"err_not_allowed":  "That action is not allowed right now.",
		"no_items":         "Nothing here yet.",
	},
	"ja": {
		"app_title":        "家事ボード",
		"nav_dashboard":    "ダッシュボード",
		"nav_tasks":        "タスク",
		"nav_templates":    "テンプレート",
		"nav_rewards":      "ごほうび",
		"nav_points":       "ポイント",
		"nav_menus":        "献立",
		"nav_ingredients":  "材料",
		"nav_meal_plans":   "献立計画",
		"nav_settings":     "設定",
		"nav_order_sheet":  "指示書",
		"login":            "ログイン",
		"logout":           "ログアウト",
		"register":         "世帯を作成",
		"join":             "世帯に参加",
		"email":            "メールアドレス",
		"password":         "パスワード",
		"your_name":        "名前",
		"household_name":   "世帯名",
		"join_code":        "参加コード",
		"regenerate_code":  "コードを再発行",
		"save":             "保存",
		"create":           "作成",
		"edit":             "編集",
		"delete":           "削除",
		"cancel":           "キャンセル",
		"back":             "戻る",
		"title":            "タイトル",
		"notes":            "メモ",
		"memo":             "メモ",
		"category":         "カテゴリ",
		"status":           "状態",
		"priority":         "優先度",
		"due_date":         "期限日",
		"due_time":         "期限時刻",
		"proposed_points":  "予定ポイント",
		"actual_points":    "実績ポイント",
		"points":           "ポイント",
		"assignee":         "担当",
		"unassigned":       "未割当",
		"created_by":       "作成者",
		"order_number":     "番号",
		"action_claim":     "引き受ける",
		"action_start":     "開始",
		"action_complete":  "完了",
		"action_approve":   "承認",
		"action_cancel":    "中止",
		"new_task":         "新しいタスク",
		"from_template":    "テンプレートから",
		"instructions":     "手順",
		"upload_image":     "画像をアップロード",
		"reward":           "ごほうび",
		"rewards":          "ごほうび",
		"point_cost":       "必要ポイント",
		"request":          "申請",
		"approve":          "承認",
		"reject":           "却下",
		"requested_by":     "申請者",
		"active":           "有効",
		"inactive":         "無効",
		"balance":          "残高",
		"balances":         "残高一覧",
		"history":          "履歴",
		"adjust":           "調整",
		"amount":           "数量",
		"description":      "説明",
		"contribution":     "還元率",
		"recurring_rules":  "繰り返しルール",
		"frequency":        "頻度",
		"freq_daily":       "毎日",
		"freq_weekly":      "毎週",
		"freq_monthly":     "毎月",
		"next_run":         "次回実行日",
		"due_in_days":      "期限（日後）",
		"run_now":          "今すぐ実行",
		"ingredient":       "材料",
		"ingredients":      "材料",
		"unit":             "単位",
		"quantity":         "分量",
		"dish_type":        "料理区分",
		"menu":             "献立",
		"menus":            "献立",
		"meal_set":         "セット",
		"meal_plan":        "献立計画",
		"meal_plans":       "献立計画",
		"start_date":       "開始日",
		"number_of_days":   "日数",
		"lunch":            "昼食",
		"dinner":           "夕食",
		"shopping_list":    "買い物リスト",
		"generate_tasks":   "食事タスクを作成",
		"export":           "エクスポート",
		"import":           "インポート",
		"export_import":    "エクスポート / インポート",
		"language":         "言語",
		"theme":            "テーマ",
		"font":             "フォント",
		"appearance":       "表示設定",
		"household":        "世帯",
		"members":          "メンバー",
		"admin":            "管理者",
		"name":             "名前",
		"day":              "日付",
		"days":             "日数",
		"add_row":          "行を追加",
		"sort_order":       "表示順",
		"unit_options":     "単位の選択肢",
		"usage_count":      "計画での使用数",
		"dish_types":       "料理区分",
		"meal_sets":        "セット構成",
		"profile":          "プロフィール",
		"current_password": "現在のパスワード",
		"new_password":     "新しいパスワード",
		"household_default": "世帯の設定に従う",
		"regenerate":       "再発行",
		"import_file":      "インポートするファイル",
		"nav_transfer":     "エクスポート / インポート",
		"lang_en":          "英語",
		"lang_ja":          "日本語",
		"theme_sakura":     "さくら",
		"theme_mint":       "ミント",
		"theme_creamsicle": "クリームシクル",
		"theme_night":      "ナイト",
		"font_modern":      "モダン",
		"font_serif":       "明朝",
		"font_rounded":     "丸ゴシック",
		"flash_saved":      "保存しました。",
		"flash_created":    "作成しました。",
		"flash_deleted":    "削除しました。",
		"flash_requested":  "ごほうびを申請しました。",
		"flash_approved":   "承認しました。",
		"flash_rejected":   "却下しました。",
		"flash_imported":   "インポートが完了しました。",
		"flash_rules_run":  "繰り返しルールを実行しました。",
		"flash_meals_run":  "食事タスクを作成しました。",
		"err_login":        "メールアドレスまたはパスワードが違います。",
		"err_join_code":    "その参加コードの世帯は見つかりません。",
		"err_email_taken":  "このメールアドレスは既に登録されています。",
		"err_in_use":       "使用中のため削除できません。",
		"err_invalid":      "入力内容が正しくありません。",
		"err_not_allowed":  "現在その操作はできません。",
		"no_items":         "まだ何もありません。",
	},
}

var statusLabels = map[string]map[string]string{
	"en": {
		"open":        "Open",
		"assigned":    "Assigned",
		"in_progress": "In progress",
		"completed":   "Completed",
		"approved":    "Approved",
		"cancelled":   "Cancelled",
	},
	"ja": {
		"open":        "未着手",
		"assigned":    "割当済",
		"in_progress": "作業中",
		"completed":   "完了",
		"approved":    "承認済",
		"cancelled":   "中止",
	},
}
