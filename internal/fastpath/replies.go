package fastpath

// modeReplies are the fixed confirmations per (action, mode). A reply with a
// param substitutes that request parameter for {} or the locale's fallback.
var modeReplies = map[string]map[string]reply{
	"clipboard_tools": {
		"history":           {en: "Opened Clipboard History (Win+V).", ar: "تم فتح سجل الحافظة (Win+V)."},
		"clipboard_history": {en: "Opened Clipboard History (Win+V).", ar: "تم فتح سجل الحافظة (Win+V)."},
	},
	"network_tools": {
		"open_network_settings":      {en: "Opened network settings.", ar: "تم فتح إعدادات الشبكة."},
		"settings":                   {en: "Opened network settings.", ar: "تم فتح إعدادات الشبكة."},
		"wifi_on":                    {en: "Wi-Fi turned on.", ar: "تم تشغيل الواي فاي."},
		"wifi_off":                   {en: "Wi-Fi turned off.", ar: "تم إيقاف الواي فاي."},
		"flush_dns":                  {en: "DNS cache flushed.", ar: "تم مسح ذاكرة DNS."},
		"renew_ip":                   {en: "IP renewed.", ar: "تم تجديد عنوان IP."},
		"disconnect_current_network": {en: "Disconnected from current network.", ar: "تم قطع الاتصال بالشبكة الحالية."},
		"connect_wifi":               {en: "Sent Wi-Fi connection request.", ar: "تم إرسال طلب الاتصال بالشبكة."},
		"ip_internal":                {en: "Fetched internal IP.", ar: "تم جلب عنوان IP الداخلي."},
		"ip_external":                {en: "Fetched external IP.", ar: "تم جلب عنوان IP الخارجي."},
		"ping":                       {en: "Ping test executed.", ar: "تم تنفيذ اختبار الاتصال (Ping)."},
	},
	"media_control": {
		"play_pause": {en: "Play/Pause executed.", ar: "تم تنفيذ تشغيل/إيقاف مؤقت."},
		"next":       {en: "Skipped to next track.", ar: "تم الانتقال للمقطع التالي."},
		"previous":   {en: "Went back to previous track.", ar: "تم الرجوع للمقطع السابق."},
	},
	"security_tools": {
		"firewall_status":       {en: "Fetched firewall status.", ar: "تم جلب حالة جدار الحماية."},
		"firewall_enable":       {en: "Firewall enabled.", ar: "تم تفعيل جدار الحماية."},
		"firewall_disable":      {en: "Firewall disabled.", ar: "تم تعطيل جدار الحماية."},
		"recent_files_list":     {en: "Fetched recent files list.", ar: "تم جلب قائمة الملفات المفتوحة مؤخراً."},
		"recent_files_clear":    {en: "Cleared recent files list.", ar: "تم مسح قائمة الملفات المفتوحة مؤخراً."},
		"close_remote_sessions": {en: "Executed remote sessions close.", ar: "تم تنفيذ إغلاق الجلسات البعيدة."},
		"intrusion_summary":     {en: "Prepared failed-login intrusion summary.", ar: "تم تجهيز ملخص محاولات الدخول الفاشلة."},
	},
	"background_tools": {
		"count_background":       {en: "Fetched background processes count.", ar: "تم جلب عدد تطبيقات الخلفية."},
		"list_visible_windows":   {en: "Fetched visible windows list.", ar: "تم جلب قائمة التطبيقات المرئية."},
		"list_minimized_windows": {en: "Fetched minimized windows list.", ar: "تم جلب قائمة التطبيقات المصغرة."},
		"ghost_apps":             {en: "Fetched heavy headless/background apps.", ar: "تم جلب التطبيقات الخلفية الثقيلة."},
		"network_usage_per_app":  {en: "Fetched apps currently using network.", ar: "تم جلب التطبيقات التي تستخدم الشبكة الآن."},
		"camera_usage_now":       {en: "Checked apps currently using camera.", ar: "تم فحص التطبيقات التي تستخدم الكاميرا."},
		"mic_usage_now":          {en: "Checked apps currently using microphone.", ar: "تم فحص التطبيقات التي تستخدم الميكروفون."},
		"wake_lock_apps":         {en: "Fetched apps blocking sleep.", ar: "تم جلب التطبيقات التي تمنع السكون."},
		"process_paths":          {en: "Fetched running app paths.", ar: "تم جلب مسارات التطبيقات الشغالة."},
	},
	"performance_tools": {
		"top_cpu":       {en: "Fetched top 5 CPU-consuming processes.", ar: "تم جلب أعلى 5 عمليات استهلاكاً للمعالج."},
		"top_ram":       {en: "Fetched top 5 RAM-consuming processes.", ar: "تم جلب أعلى 5 عمليات استهلاكاً للرام."},
		"top_disk":      {en: "Fetched top 5 disk-consuming processes.", ar: "تم جلب أعلى 5 عمليات استهلاكاً للقرص."},
		"cpu_clock":     {en: "Fetched current CPU clock speed.", ar: "تم جلب سرعة المعالج الحالية."},
		"available_ram": {en: "Fetched available RAM.", ar: "تم جلب حجم الذاكرة المتاحة."},
		"pagefile_used": {en: "Fetched page file usage.", ar: "تم جلب استهلاك ملف التبادل (Page File)."},
	},
	"browser_control": {
		"new_tab":    {en: "Opened a new browser tab.", ar: "تم فتح تبويب جديد."},
		"close_tab":  {en: "Closed current browser tab.", ar: "تم إغلاق التبويب الحالي."},
		"reopen_tab": {en: "Reopened last closed tab.", ar: "تمت إعادة فتح آخر تبويب مغلق."},
		"next_tab":   {en: "Moved to next tab.", ar: "تم الانتقال للتبويب التالي."},
		"prev_tab":   {en: "Moved to previous tab.", ar: "تم الانتقال للتبويب السابق."},
		"reload":     {en: "Reloaded page.", ar: "تم تحديث الصفحة."},
		"incognito":  {en: "Opened incognito/private window.", ar: "تم فتح نافذة التصفح الخفي."},
		"home":       {en: "Opened browser home page.", ar: "تم الذهاب إلى صفحة البداية."},
		"history":    {en: "Opened browser history.", ar: "تم فتح سجل التصفح."},
		"downloads":  {en: "Opened browser downloads.", ar: "تم فتح تنزيلات المتصفح."},
		"find":       {en: "Opened Find in page.", ar: "تم فتح البحث داخل الصفحة."},
		"zoom_in":    {en: "Zoomed in.", ar: "تم تكبير الصفحة."},
		"zoom_out":   {en: "Zoomed out.", ar: "تم تصغير الصفحة."},
		"zoom_reset": {en: "Reset zoom to 100%.", ar: "تمت إعادة الزوم إلى 100%."},
		"save_pdf":   {en: "Opened save as PDF flow.", ar: "تم فتح نافذة حفظ الصفحة PDF."},
	},
	"window_control": {
		"minimize":          {en: "Window minimized.", ar: "تم تصغير النافذة."},
		"maximize":          {en: "Window maximized.", ar: "تم تكبير النافذة."},
		"restore":           {en: "Window restored.", ar: "تمت استعادة حجم النافذة."},
		"close_current":     {en: "Current window closed.", ar: "تم إغلاق النافذة الحالية."},
		"show_desktop":      {en: "Minimized all windows (Show Desktop).", ar: "تم تصغير كل النوافذ وإظهار سطح المكتب."},
		"undo_show_desktop": {en: "Restored minimized windows.", ar: "تمت إعادة إظهار النوافذ المصغرة."},
		"split_left":        {en: "Moved window to the left side.", ar: "تم نقل النافذة لليسار."},
		"split_right":       {en: "Moved window to the right side.", ar: "تم نقل النافذة لليمين."},
		"task_view":         {en: "Opened Task View.", ar: "تم فتح عرض المهام."},
		"alt_tab":           {en: "Switched window.", ar: "تم تبديل النافذة."},
	},
	"app_tools": {
		"open_task_manager":    {en: "Opened Task Manager.", ar: "تم فتح مدير المهام."},
		"open_notepad":         {en: "Opened Notepad.", ar: "تم فتح المفكرة."},
		"open_calc":            {en: "Opened Calculator.", ar: "تم فتح الآلة الحاسبة."},
		"open_paint":           {en: "Opened Paint.", ar: "تم فتح الرسام."},
		"open_default_browser": {en: "Opened default browser.", ar: "تم فتح المتصفح الافتراضي."},
		"open_chrome":          {en: "Opened Chrome.", ar: "تم فتح Chrome."},
		"open_control_panel":   {en: "Opened Control Panel.", ar: "تم فتح لوحة التحكم."},
		"open_store":           {en: "Opened Microsoft Store.", ar: "تم فتح متجر Microsoft."},
		"open_camera":          {en: "Opened Camera.", ar: "تم فتح الكاميرا."},
		"open_calendar":        {en: "Opened Calendar.", ar: "تم فتح التقويم."},
		"open_mail":            {en: "Opened Mail.", ar: "تم فتح البريد."},
	},
	"shell_tools": {
		"quick_settings":  {en: "Opened Quick Settings.", ar: "تم فتح الإعدادات السريعة."},
		"notifications":   {en: "Opened Notification Center.", ar: "تم فتح مركز الإشعارات."},
		"search":          {en: "Opened Windows Search.", ar: "تم فتح بحث ويندوز."},
		"run":             {en: "Opened Run dialog.", ar: "تم فتح نافذة Run."},
		"file_explorer":   {en: "Opened File Explorer.", ar: "تم فتح مستكشف الملفات."},
		"quick_link_menu": {en: "Opened Quick Link menu (Win+X).", ar: "تم فتح قائمة الارتباط السريع (Win+X)."},
		"task_view":       {en: "Opened Task View.", ar: "تم فتح عرض المهام."},
	},
	"service_tools": {
		"start":   {en: "Service started: {}.", ar: "تم تشغيل الخدمة: {}.", param: "name", enIfMissing: "target service", arIfMissing: "المحددة"},
		"stop":    {en: "Service stopped: {}.", ar: "تم إيقاف الخدمة: {}.", param: "name", enIfMissing: "target service", arIfMissing: "المحددة"},
		"restart": {en: "Service restarted: {}.", ar: "تمت إعادة تشغيل الخدمة: {}.", param: "name", enIfMissing: "target service", arIfMissing: "المحددة"},
	},
	"startup_tools": {
		"startup_list":        {en: "Fetched startup apps list.", ar: "تم جلب قائمة برامج بدء التشغيل."},
		"startup_impact_time": {en: "Fetched startup impact time.", ar: "تم جلب وقت تأثير بدء التشغيل."},
		"registry_startups":   {en: "Fetched registry startup entries.", ar: "تم جلب برامج بدء التشغيل من السجل."},
		"folder_startups":     {en: "Fetched startup folder entries.", ar: "تم جلب برامج بدء التشغيل من مجلد Startup."},
		"signature_check":     {en: "Checked startup apps signatures/security.", ar: "تم فحص أمان/توقيع برامج بدء التشغيل."},
		"disable":             {en: "Disabled startup app: {}.", ar: "تم تعطيل برنامج بدء التشغيل: {}.", param: "name", enIfMissing: "target item", arIfMissing: "المحدد"},
		"enable":              {en: "Enabled startup app: {}.", ar: "تم تفعيل برنامج بدء التشغيل: {}.", param: "name", enIfMissing: "target item", arIfMissing: "المحدد"},
	},
	"task_tools": {
		"list":   {en: "Fetched scheduled tasks list.", ar: "تم جلب قائمة المهام المجدولة."},
		"run":    {en: "Ran scheduled task: {}.", ar: "تم تشغيل المهمة المجدولة: {}.", param: "name", enIfMissing: "target task", arIfMissing: "المحددة"},
		"delete": {en: "Deleted scheduled task: {}.", ar: "تم حذف المهمة المجدولة: {}.", param: "name", enIfMissing: "target task", arIfMissing: "المحددة"},
		"create": {en: "Created scheduled task: {}.", ar: "تم إنشاء مهمة مجدولة: {}.", param: "name", enIfMissing: "new task", arIfMissing: "جديدة"},
	},
	"user_tools": {
		"list":         {en: "Fetched users list.", ar: "تم جلب قائمة المستخدمين."},
		"create":       {en: "Created user: {}.", ar: "تم إنشاء المستخدم: {}.", param: "username", enIfMissing: "new user", arIfMissing: "الجديد"},
		"delete":       {en: "Deleted user: {}.", ar: "تم حذف المستخدم: {}.", param: "username", enIfMissing: "target user", arIfMissing: "المحدد"},
		"set_password": {en: "Updated password for user: {}.", ar: "تم تغيير كلمة مرور المستخدم: {}.", param: "username", enIfMissing: "target user", arIfMissing: "المحدد"},
		"set_type":     {en: "Updated user type for: {}.", ar: "تم تحديث نوع المستخدم: {}.", param: "username", enIfMissing: "target user", arIfMissing: "المحدد"},
	},
}
