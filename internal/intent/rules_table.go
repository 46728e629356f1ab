package intent

// table is the ordered rule set. The first rule with an alias contained in the
// normalized input wins, so position encodes priority.
var table = []Rule{
	{ID: "system.shutdown", Action: "system_power", Mode: "shutdown", Risk: RiskDestructive, Aliases: []string{"shutdown", "power off", "اطفي", "ايقاف التشغيل"}},
	{ID: "system.restart", Action: "system_power", Mode: "restart", Risk: RiskDestructive, Aliases: []string{"restart", "reboot", "اعاده التشغيل", "إعادة التشغيل"}},
	{ID: "system.lock", Action: "system_power", Mode: "lock", Risk: RiskSafe, Aliases: []string{"lock", "lock screen", "قفل الشاشه", "اقفل الشاشه"}},
	{ID: "system.sleep", Action: "system_power", Mode: "sleep", Risk: RiskElevated, Aliases: []string{"sleep", "sleep mode", "وضع السكون", "سكون"}},
	{ID: "system.hibernate", Action: "system_power", Mode: "hibernate", Risk: RiskElevated, Aliases: []string{"hibernate", "hibernation", "وضع السبات", "hibernate mode"}},
	{ID: "system.logoff", Action: "system_power", Mode: "logoff", Risk: RiskElevated, Aliases: []string{"logoff", "logout", "تسجيل الخروج"}},
	{ID: "system.screen_off", Action: "system_power", Mode: "screen_off", Risk: RiskSafe, Aliases: []string{"screen off", "اغلاق الشاشه", "اطفاء الشاشه"}},
	{ID: "system.airplane_on", Action: "power_user_tools", Mode: "airplane_on", Risk: RiskSafe, Aliases: []string{"airplane mode on", "turn on airplane", "تفعيل وضع الطيران"}},
	{ID: "system.airplane_off", Action: "power_user_tools", Mode: "airplane_off", Risk: RiskSafe, Aliases: []string{"airplane mode off", "turn off airplane", "تعطيل وضع الطيران"}},
	{ID: "system.uptime", Action: "system_info", Mode: "uptime", Risk: RiskSafe, Aliases: []string{"uptime", "وقت التشغيل", "مدة التشغيل"}},
	{ID: "system.windows_version", Action: "system_info", Mode: "windows_version", Risk: RiskSafe, Aliases: []string{"windows version", "اصدار الويندوز", "إصدار الويندوز"}},
	{ID: "system.about", Action: "system_info", Mode: "about", Risk: RiskSafe, Aliases: []string{"about device", "about page", "حول الجهاز"}},
	{ID: "system.power_plan_balanced", Action: "system_power", Mode: "power_plan_balanced", Risk: RiskSafe, Aliases: []string{"balanced power", "متوازن", "خطة الطاقة المتوازنة"}},
	{ID: "system.power_plan_saver", Action: "system_power", Mode: "power_plan_saver", Risk: RiskSafe, Aliases: []string{"power saver", "battery saver on", "توفير الطاقة", "تفعيل توفير البطارية"}},
	{ID: "system.power_plan_high", Action: "system_power", Mode: "power_plan_high", Risk: RiskSafe, Aliases: []string{"high performance", "اداء عالي", "أداء عالي"}},
	{ID: "system.battery_status", Action: "system_info", Mode: "battery", Risk: RiskSafe, Aliases: []string{"battery percentage", "battery status", "نسبة البطارية", "نسبه البطاريه", "كم نسبة البطارية", "شو نسبة البطارية"}},
	{ID: "system.battery_saver_off", Action: "system_power", Mode: "power_plan_balanced", Risk: RiskSafe, Aliases: []string{"disable battery saver", "تعطيل توفير البطارية"}},
	{ID: "system.bios", Action: "system_power", Mode: "reboot_bios", Risk: RiskDestructive, Aliases: []string{"bios", "فتح البيوس", "فتح الـ bios", "reboot bios"}},
	{ID: "system.rename_pc", Action: "system_power", Mode: "rename_pc", Risk: RiskElevated, Aliases: []string{"rename computer", "rename pc", "تغيير اسم الكمبيوتر"}, Params: []string{"name"}},
	{ID: "system.schedule_shutdown", Action: "shutdown_schedule", Mode: "set", Risk: RiskDestructive, Aliases: []string{"schedule shutdown", "shutdown after", "جدوله ايقاف", "جدولة ايقاف"}},
	{ID: "system.cancel_shutdown", Action: "shutdown_schedule", Mode: "cancel", Risk: RiskSafe, Aliases: []string{"cancel shutdown", "الغاء جدوله", "إلغاء جدولة"}},

	{ID: "audio.mute", Action: "volume", Mode: "mute", Risk: RiskSafe, Aliases: []string{"mute", "كتم الصوت", "اكتم الصوت"}},
	{ID: "audio.unmute", Action: "volume", Mode: "unmute", Risk: RiskSafe, Aliases: []string{"unmute", "الغاء الكتم", "إلغاء الكتم"}},
	{ID: "audio.up", Action: "volume", Mode: "up", Risk: RiskSafe, Aliases: []string{"volume up", "raise volume", "رفع الصوت", "اعلي الصوت"}},
	{ID: "audio.down", Action: "volume", Mode: "down", Risk: RiskSafe, Aliases: []string{"volume down", "خفض الصوت", "وطي الصوت"}},
	{ID: "audio.get", Action: "volume", Mode: "get", Risk: RiskSafe, Aliases: []string{"current volume", "volume level", "مستوى الصوت", "نسبه الصوت", "نسبة الصوت", "كم نسبة الصوت", "شو نسبة الصوت"}},
	{ID: "audio.play_pause", Action: "media_control", Mode: "play_pause", Risk: RiskSafe, Aliases: []string{"play pause", "pause media", "ايقاف مؤقت", "تشغيل او ايقاف مؤقت", "شغل وقف", "شغل/وقف"}},
	{ID: "audio.next", Action: "media_control", Mode: "next", Risk: RiskSafe, Aliases: []string{"next song", "next track", "التالي", "الاغنيه التاليه", "المقطع التالي"}},
	{ID: "audio.previous", Action: "media_control", Mode: "previous", Risk: RiskSafe, Aliases: []string{"previous song", "previous track", "السابق", "الاغنيه السابقه", "المقطع السابق"}},
	{ID: "audio.stop", Action: "media_tools", Mode: "stop_all_media", Risk: RiskSafe, Aliases: []string{"stop media", "ايقاف الوسائط", "stop playback", "ايقاف كل الوسائط", "إيقاف كل الوسائط"}},
	{ID: "audio.mixer", Action: "app_tools", Mode: "open_volume_mixer", Risk: RiskSafe, Aliases: []string{"volume mixer", "sndvol", "خلط الصوت", "الميكسار"}},
	{ID: "audio.mic_settings", Action: "app_tools", Mode: "open_mic_settings", Risk: RiskSafe, Aliases: []string{"microphone settings", "mic settings", "اعدادات الميكروفون"}},
	{ID: "audio.voice_record", Action: "microphone_record", Risk: RiskSafe, Aliases: []string{"start voice recorder", "تسجيل صوت سريع", "ابدأ تسجيل صوت"}, Params: []string{"seconds"}},
	{ID: "audio.set_output", Risk: RiskSafe, Aliases: []string{"audio output", "speaker headset", "تغيير مخرج الصوت"}, Unsupported: "Changing audio output is not implemented in DesktopTool yet."},
	{ID: "audio.spatial_sound", Risk: RiskSafe, Aliases: []string{"spatial sound", "الصوت المحيطي"}, Unsupported: "Spatial sound toggle is not implemented in DesktopTool yet."},

	{ID: "display.brightness_up", Action: "brightness", Mode: "up", Risk: RiskSafe, Aliases: []string{"brightness up", "raise brightness", "رفع الاضاءه", "رفع السطوع"}},
	{ID: "display.brightness_down", Action: "brightness", Mode: "down", Risk: RiskSafe, Aliases: []string{"brightness down", "خفض الاضاءه", "خفض السطوع"}},
	{ID: "display.brightness_get", Action: "brightness", Mode: "get", Risk: RiskSafe, Aliases: []string{"brightness level", "current brightness", "مستوى الاضاءه", "مستوى السطوع", "نسبة الاضاءة", "كم نسبة الاضاءة", "كم السطوع"}},
	{ID: "display.night_light_on", Action: "ui_tools", Mode: "night_light_on", Risk: RiskSafe, Aliases: []string{"night light on", "تفعيل الوضع الليلي"}},
	{ID: "display.night_light_off", Action: "ui_tools", Mode: "night_light_off", Risk: RiskSafe, Aliases: []string{"night light off", "تعطيل الوضع الليلي"}},
	{ID: "display.project_panel", Action: "window_control", Mode: "project_panel", Risk: RiskSafe, Aliases: []string{"project", "العرض على شاشة أخرى", "العرض على شاشه اخرى"}},
	{ID: "display.extend", Risk: RiskSafe, Aliases: []string{"extend", "وضع توسيع الشاشة", "وضع توسيع الشاشه"}, Unsupported: "Multi-monitor layout changes are not implemented yet."},
	{ID: "display.duplicate", Risk: RiskSafe, Aliases: []string{"duplicate", "وضع تكرار الشاشة", "وضع تكرار الشاشه"}, Unsupported: "Multi-monitor layout changes are not implemented yet."},
	{ID: "display.resolution", Risk: RiskSafe, Aliases: []string{"change resolution", "تغيير دقة الشاشة", "تغيير دقه الشاشه"}, Unsupported: "Changing display resolution from intent map is not implemented yet."},
	{ID: "display.rotate", Risk: RiskSafe, Aliases: []string{"rotate screen", "تدوير الشاشة", "تدوير الشاشه"}, Unsupported: "Display rotation from intent map is not implemented yet."},
	{ID: "display.screenshot_window", Action: "screenshot_tools", Mode: "window_active", Risk: RiskSafe, Aliases: []string{"window screenshot", "لقطه نافذه"}},
	{ID: "display.screenshot_full", Action: "screenshot_tools", Mode: "full", Risk: RiskSafe, Aliases: []string{"full screenshot", "screenshot", "لقطه شاشه", "سكرين شوت"}},
	{ID: "display.snipping_tool", Action: "screenshot_tools", Mode: "snipping_tool", Risk: RiskSafe, Aliases: []string{"snipping tool", "اداه القص"}},
	{ID: "display.clipboard_history", Risk: RiskSafe, Aliases: []string{"clipboard history", "سجل الحافظة", "سجل الحافظه", "الحافظة السحابية", "افتح سجل الحافظه", "افتح سجل الحافظة"}, Unsupported: "Clipboard history has no standard Linux desktop equivalent yet."},
	{ID: "display.clipboard_clear", Action: "clipboard_tools", Mode: "clear", Risk: RiskSafe, Aliases: []string{"clear clipboard", "مسح الحافظه"}},
	{ID: "display.desktop_icons_show", Risk: RiskSafe, Aliases: []string{"show desktop icons", "اظهار ايقونات سطح المكتب"}, Unsupported: "Showing or hiding desktop icons depends on the desktop shell and is not implemented yet."},
	{ID: "display.desktop_icons_hide", Risk: RiskSafe, Aliases: []string{"اخفاء ايقونات سطح المكتب", "hide desktop icons"}, Unsupported: "Showing or hiding desktop icons depends on the desktop shell and is not implemented yet."},

	{ID: "files.open_documents", Action: "file_tools", Mode: "open_documents", Risk: RiskSafe, Aliases: []string{"open documents", "افتح المستندات"}},
	{ID: "files.open_downloads", Action: "file_tools", Mode: "open_downloads", Risk: RiskSafe, Aliases: []string{"open downloads", "افتح التنزيلات"}},
	{ID: "files.open_pictures", Action: "file_tools", Mode: "open_pictures", Risk: RiskSafe, Aliases: []string{"open pictures", "افتح الصور"}},
	{ID: "files.open_videos", Action: "file_tools", Mode: "open_videos", Risk: RiskSafe, Aliases: []string{"open videos", "افتح الفيديوهات"}},
	{ID: "files.create_folder", Action: "file_tools", Mode: "create_folder", Risk: RiskSafe, Aliases: []string{"create folder", "انشاء مجلد", "إنشاء مجلد"}, Params: []string{"name"}},
	{ID: "files.delete", Action: "file_tools", Mode: "delete", Risk: RiskDestructive, Aliases: []string{"delete file", "حذف ملف"}, Params: []string{"path"}},
	{ID: "files.delete_permanent", Action: "file_tools", Mode: "delete", Risk: RiskDestructive, Aliases: []string{"permanent delete", "حذف نهائي"}, Params: []string{"path", "permanent"}},
	{ID: "files.empty_recycle_bin", Action: "file_tools", Mode: "empty_recycle_bin", Risk: RiskDestructive, Aliases: []string{"empty recycle bin", "افراغ سله المهملات"}},
	{ID: "files.copy", Action: "file_tools", Mode: "copy", Risk: RiskSafe, Aliases: []string{"copy file", "نسخ ملف"}, Params: []string{"path", "target"}},
	{ID: "files.move", Action: "file_tools", Mode: "move", Risk: RiskSafe, Aliases: []string{"move file", "cut file", "قص ملف"}, Params: []string{"path", "target"}},
	{ID: "files.paste", Action: "hotkey", Risk: RiskSafe, Aliases: []string{"paste file", "لصق ملف"}, Params: []string{"keys"}},
	{ID: "files.rename", Action: "file_tools", Mode: "rename", Risk: RiskSafe, Aliases: []string{"rename file", "اعاده تسميه", "إعادة تسمية"}, Params: []string{"path", "name"}},
	{ID: "files.zip", Action: "file_tools", Mode: "zip", Risk: RiskSafe, Aliases: []string{"zip file", "ضغط ملف"}, Params: []string{"path", "target"}},
	{ID: "files.unzip", Action: "file_tools", Mode: "unzip", Risk: RiskSafe, Aliases: []string{"unzip file", "فك ضغط"}, Params: []string{"path", "target"}},
	{ID: "files.search_ext", Action: "file_tools", Mode: "search_ext", Risk: RiskSafe, Aliases: []string{"search extension", "امتداد", "ابحث عن ملف"}, Params: []string{"ext"}},
	{ID: "files.show_hidden", Action: "file_tools", Mode: "show_hidden", Risk: RiskSafe, Aliases: []string{"show hidden files", "اظهار الملفات المخفية", "إظهار الملفات المخفية"}},
	{ID: "files.hide_hidden", Action: "file_tools", Mode: "hide_hidden", Risk: RiskSafe, Aliases: []string{"hide hidden files", "اخفاء الملفات المخفية", "إخفاء الملفات المخفية"}},
	{ID: "files.folder_size", Action: "file_tools", Mode: "folder_size", Risk: RiskSafe, Aliases: []string{"folder size", "حجم المجلد"}, Params: []string{"path"}},
	{ID: "files.open_cmd_here", Action: "file_tools", Mode: "open_cmd_here", Risk: RiskSafe, Aliases: []string{"open cmd here", "فتح المسار في cmd"}, Params: []string{"path"}},
	{ID: "files.open_powershell_here", Action: "file_tools", Mode: "open_powershell_here", Risk: RiskSafe, Aliases: []string{"open powershell here", "فتح المسار في powershell"}, Params: []string{"path"}},

	{ID: "network.wifi_on", Action: "network_tools", Mode: "wifi_on", Risk: RiskSafe, Aliases: []string{"wifi on", "تشغيل الواي فاي", "شغل الواي فاي"}},
	{ID: "network.wifi_off", Action: "network_tools", Mode: "wifi_off", Risk: RiskSafe, Aliases: []string{"wifi off", "ايقاف الواي فاي", "طفي الواي فاي"}},
	{ID: "network.wifi_passwords", Risk: RiskElevated, Aliases: []string{"wifi passwords", "كلمات سر الواي فاي"}, Unsupported: "Reading saved Wi-Fi passwords is not supported."},
	{ID: "network.ip_internal", Action: "network_tools", Mode: "ip_internal", Risk: RiskSafe, Aliases: []string{"internal ip", "local ip", "ip الداخلي"}},
	{ID: "network.ip_external", Action: "network_tools", Mode: "ip_external", Risk: RiskSafe, Aliases: []string{"external ip", "public ip", "ip الخارجي"}},
	{ID: "network.renew_ip", Action: "network_tools", Mode: "renew_ip", Risk: RiskElevated, Aliases: []string{"renew ip", "release renew", "تجديد الip"}},
	{ID: "network.flush_dns", Action: "network_tools", Mode: "flush_dns", Risk: RiskSafe, Aliases: []string{"flush dns", "مسح dns", "افراغ dns", "إفراغ dns"}},
	{ID: "network.ping", Action: "network_tools", Mode: "ping", Risk: RiskSafe, Aliases: []string{"ping", "اختبار اتصال", "بينق"}, Params: []string{"host"}},
	{ID: "network.bluetooth_on", Action: "bluetooth_control", Mode: "on", Risk: RiskSafe, Aliases: []string{"bluetooth on", "تشغيل البلوتوث"}},
	{ID: "network.bluetooth_off", Action: "bluetooth_control", Mode: "off", Risk: RiskSafe, Aliases: []string{"bluetooth off", "ايقاف البلوتوث"}},
	{ID: "network.hotspot_on", Action: "network_tools", Mode: "hotspot_on", Risk: RiskElevated, Aliases: []string{"hotspot on", "تشغيل نقطه الاتصال"}},
	{ID: "network.hotspot_off", Action: "network_tools", Mode: "hotspot_off", Risk: RiskElevated, Aliases: []string{"hotspot off", "ايقاف نقطه الاتصال"}},
	{ID: "network.settings_open", Action: "open_settings_page", Mode: "network", Risk: RiskSafe, Aliases: []string{"open network settings", "فتح إعدادات الشبكة", "فتح اعدادات الشبكه", "افتح الشبكة", "اعدادات النت", "إعدادات النت"}, Params: []string{"page"}},
	{ID: "network.disconnect", Action: "network_tools", Mode: "disconnect_current_network", Risk: RiskSafe, Aliases: []string{"disconnect network", "قطع الاتصال بالشبكه", "افصل الشبكه", "افصل النت"}},
	{ID: "network.connect_named", Action: "network_tools", Mode: "connect_wifi", Risk: RiskSafe, Aliases: []string{"connect wifi", "الاتصال بشبكه"}, Params: []string{"host"}},

	{ID: "apps.open_browser", Action: "app_tools", Mode: "open_default_browser", Risk: RiskSafe, Aliases: []string{"open browser", "افتح المتصفح"}},
	{ID: "apps.open_chrome", Action: "app_tools", Mode: "open_chrome", Risk: RiskSafe, Aliases: []string{"open chrome", "افتح كروم"}},
	{ID: "apps.open_notepad", Action: "app_tools", Mode: "open_notepad", Risk: RiskSafe, Aliases: []string{"open notepad", "افتح المفكره", "افتح المفكرة"}},
	{ID: "apps.open_calc", Action: "app_tools", Mode: "open_calc", Risk: RiskSafe, Aliases: []string{"open calculator", "افتح الحاسبه", "افتح الحاسبة"}},
	{ID: "apps.open_paint", Action: "app_tools", Mode: "open_paint", Risk: RiskSafe, Aliases: []string{"open paint", "افتح الرسام"}},
	{ID: "apps.open_task_manager", Action: "app_tools", Mode: "open_task_manager", Risk: RiskSafe, Aliases: []string{"open task manager", "افتح مدير المهام", "taskmgr", "مدير المهام"}},
	{ID: "apps.close_app", Action: "close_app", Risk: RiskElevated, Aliases: []string{"close app", "اغلاق برنامج", "اغلق التطبيق"}, Params: []string{"process_name"}},
	{ID: "apps.close_all", Risk: RiskElevated, Aliases: []string{"close all apps", "اغلاق كل البرامج", "اغلاق كل البرامج المفتوحة"}, Unsupported: "Closing every app at once is not supported."},
	{ID: "apps.open_control_panel", Action: "app_tools", Mode: "open_control_panel", Risk: RiskSafe, Aliases: []string{"control panel", "لوحه التحكم", "لوحة التحكم"}},
	{ID: "apps.open_store", Action: "app_tools", Mode: "open_store", Risk: RiskSafe, Aliases: []string{"microsoft store", "متجر مايكروسوفت", "متجر ميكروسوفت"}},
	{ID: "apps.open_registry", Action: "app_tools", Mode: "open_registry", Risk: RiskDestructive, Aliases: []string{"registry editor", "regedit", "محرر السجل"}},
	{ID: "apps.open_add_remove", Action: "app_tools", Mode: "open_add_remove_programs", Risk: RiskSafe, Aliases: []string{"add remove programs", "اضافه او ازاله البرامج"}},
	{ID: "apps.open_camera", Action: "app_tools", Mode: "open_camera", Risk: RiskSafe, Aliases: []string{"open camera", "تشغيل الكاميرا"}},
	{ID: "apps.open_calendar", Action: "app_tools", Mode: "open_calendar", Risk: RiskSafe, Aliases: []string{"open calendar", "فتح التقويم"}},
	{ID: "apps.open_mail", Action: "app_tools", Mode: "open_mail", Risk: RiskSafe, Aliases: []string{"open mail", "فتح البريد"}},

	{ID: "dev.open_cmd_admin", Risk: RiskElevated, Aliases: []string{"cmd as admin", "فتح cmd كمسؤول"}, Unsupported: "Opening an elevated terminal is not supported; run sudo in a terminal instead."},
	{ID: "dev.open_powershell_admin", Risk: RiskElevated, Aliases: []string{"powershell as admin", "فتح powershell كمسؤول"}, Unsupported: "Opening an elevated terminal is not supported; run sudo in a terminal instead."},
	{ID: "dev.top_cpu", Action: "process_tools", Mode: "top_cpu", Risk: RiskSafe, Aliases: []string{"top cpu", "اكثر العمليات استهلاكا للمعالج", "اعلى استهلاك cpu", "اعملي اعلى cpu"}},
	{ID: "dev.top_ram", Action: "process_tools", Mode: "top_ram", Risk: RiskSafe, Aliases: []string{"top ram", "اكثر العمليات استهلاكا للرام", "اعلى استهلاك رام", "اعلى استهلاك ذاكره"}},
	{ID: "dev.sfc_scan", Risk: RiskElevated, Aliases: []string{"sfc scan", "فحص ملفات النظام"}, Unsupported: "System file checks are Windows-only."},
	{ID: "dev.chkdsk", Risk: RiskElevated, Aliases: []string{"chkdsk", "فحص القرص"}, Unsupported: "Disk checks need the disk unmounted and are not run from chat."},
	{ID: "dev.disk_management", Action: "dev_tools", Mode: "open_disk_management", Risk: RiskSafe, Aliases: []string{"disk management", "اداره الاقراص"}},
	{ID: "dev.device_manager", Risk: RiskSafe, Aliases: []string{"device manager", "اداره الاجهزه"}, Unsupported: "There is no device manager console on this desktop."},
	{ID: "dev.perfmon", Action: "dev_tools", Mode: "open_perfmon", Risk: RiskSafe, Aliases: []string{"performance monitor", "مراقب الاداء"}},
	{ID: "dev.event_viewer", Action: "dev_tools", Mode: "open_event_viewer", Risk: RiskSafe, Aliases: []string{"event viewer", "سجل الاحداث"}},
	{ID: "dev.text_to_file", Action: "text_tools", Mode: "text_to_file", Risk: RiskSafe, Aliases: []string{"text to file", "تحويل نص الى ملف", "تحويل نص لملف"}, Params: []string{"text", "path"}},
	{ID: "dev.disk_health", Risk: RiskSafe, Aliases: []string{"disk health", "health check", "فحص حالة القرص الصلب", "فحص حاله القرص الصلب"}, Unsupported: "SMART disk health checks are not implemented yet."},
	{ID: "dev.shortcuts", Risk: RiskSafe, Aliases: []string{"all shortcuts", "مفاتيح الاختصار المتاحة", "مفاتيح الاختصار المتاحه"}, Unsupported: "Listing desktop shortcuts is not implemented yet."},
	{ID: "dev.rdp", Action: "remote_tools", Mode: "rdp_open", Risk: RiskElevated, Aliases: []string{"remote desktop", "تشغيل remote desktop"}},

	{ID: "services.stop", Action: "service_tools", Mode: "stop", Risk: RiskDestructive, Aliases: []string{"stop service", "ايقاف خدمه", "ايقاف خدمة"}, Params: []string{"name"}},
	{ID: "services.restart", Action: "service_tools", Mode: "restart", Risk: RiskElevated, Aliases: []string{"restart service", "اعادة تشغيل خدمة", "اعاده تشغيل خدمة", "إعادة تشغيل خدمة"}, Params: []string{"name"}},
	{ID: "services.start", Action: "service_tools", Mode: "start", Risk: RiskElevated, Aliases: []string{"start service", "تشغيل خدمة", "تشغيل خدمه", "شغل خدمة", "شغل خدمه"}, Params: []string{"name"}},
	{ID: "services.open", Risk: RiskSafe, Aliases: []string{"open services", "فتح الخدمات"}, Unsupported: "There is no services console on this desktop; ask to start, stop or restart a service instead."},

	{ID: "process.restart_explorer", Risk: RiskElevated, Aliases: []string{"restart explorer", "restart explorer.exe", "اعادة تشغيل explorer", "إعادة تشغيل واجهة الويندوز"}, Unsupported: "Restarting Windows Explorer is Windows-only."},

	{ID: "security.firewall_status", Action: "security_tools", Mode: "firewall_status", Risk: RiskSafe, Aliases: []string{"firewall status", "حالة الجدار الناري", "هل الجدار الناري شغال", "هل جدار الحمايه شغال"}},
	{ID: "security.firewall_enable", Action: "security_tools", Mode: "firewall_enable", Risk: RiskElevated, Aliases: []string{"enable firewall", "تفعيل الجدار الناري", "تشغيل الجدار الناري"}},
	{ID: "security.firewall_disable", Action: "security_tools", Mode: "firewall_disable", Risk: RiskDestructive, Aliases: []string{"disable firewall", "تعطيل الجدار الناري", "ايقاف الجدار الناري"}},
	{ID: "security.clear_recent_files", Action: "security_tools", Mode: "recent_files_clear", Risk: RiskSafe, Aliases: []string{"clear recent files", "مسح الملفات المفتوحة مؤخرا", "مسح الملفات المفتوحه مؤخرا"}},
	{ID: "security.recent_files", Action: "security_tools", Mode: "recent_files_list", Risk: RiskSafe, Aliases: []string{"recent files", "الملفات المفتوحة مؤخرا", "الملفات المفتوحه مؤخرا"}},
	{ID: "security.close_remote_sessions", Risk: RiskElevated, Aliases: []string{"close remote sessions", "اغلاق الجلسات عن بعد", "إغلاق الجلسات عن بعد"}, Unsupported: "Closing remote sessions is not implemented yet."},
	{ID: "security.intrusion_summary", Action: "security_tools", Mode: "intrusion_summary", Risk: RiskSafe, Aliases: []string{"intrusion summary", "ملخص محاولات الاختراق", "كشف محاولات الاختراق الفاشلة"}},

	{ID: "background.count", Action: "background_tools", Mode: "count_background", Risk: RiskSafe, Aliases: []string{"count background processes", "تعداد التطبيقات المشغلة في الخلفية", "عدد تطبيقات الخلفية"}},
	{ID: "background.visible_windows", Action: "background_tools", Mode: "list_visible_windows", Risk: RiskSafe, Aliases: []string{"list visible windows", "قائمة التطبيقات المرئية"}},
	{ID: "background.minimized_windows", Risk: RiskSafe, Aliases: []string{"list minimized windows", "قائمة التطبيقات المصغرة"}, Unsupported: "Listing minimized windows is not implemented yet."},
	{ID: "background.ghost_apps", Risk: RiskSafe, Aliases: []string{"ghost apps", "التطبيقات التي لا تملك نافذة"}, Unsupported: "Detecting windowless background apps is not implemented yet."},
	{ID: "background.network_usage", Risk: RiskSafe, Aliases: []string{"network usage per app", "اي تطبيق يستخدم الانترنت", "من يستخدم النت الان"}, Unsupported: "Per-app network usage is not implemented yet."},
	{ID: "background.camera_usage", Risk: RiskSafe, Aliases: []string{"camera usage now", "اي تطبيق يستخدم الكاميرا", "من يستخدم الكاميرا"}, Unsupported: "Camera usage checks are not implemented yet."},
	{ID: "background.mic_usage", Risk: RiskSafe, Aliases: []string{"mic usage now", "اي تطبيق يستخدم الميكروفون", "من يستخدم الميكروفون"}, Unsupported: "Microphone usage checks are not implemented yet."},
	{ID: "background.wake_lock", Action: "background_tools", Mode: "wake_lock_apps", Risk: RiskSafe, Aliases: []string{"wake lock apps", "التطبيقات التي تمنع السكون", "مين مانع السكون"}},
	{ID: "background.process_paths", Action: "background_tools", Mode: "process_paths", Risk: RiskSafe, Aliases: []string{"process paths", "مسار التطبيقات الشغالة", "مسار التطبيق الشغال"}},

	{ID: "startup.signature_check", Risk: RiskSafe, Aliases: []string{"startup signature check", "فحص امان برامج بدء التشغيل", "فحص توقيع برامج بدء التشغيل"}, Unsupported: "Startup signature checks are Windows-only."},
	{ID: "startup.list", Action: "startup_tools", Mode: "startup_list", Risk: RiskSafe, Aliases: []string{"startup list", "قائمة برامج بدء التشغيل", "startup apps list"}},
	{ID: "startup.disable", Action: "startup_tools", Mode: "disable", Risk: RiskElevated, Aliases: []string{"disable startup", "تعطيل برنامج من بدء التشغيل"}, Params: []string{"name"}},
	{ID: "startup.enable", Action: "startup_tools", Mode: "enable", Risk: RiskElevated, Aliases: []string{"enable startup", "تفعيل برنامج في بدء التشغيل"}, Params: []string{"name"}},
	{ID: "startup.registry", Risk: RiskSafe, Aliases: []string{"registry startups", "برامج بدء التشغيل من السجل"}, Unsupported: "Registry startup entries are Windows-only."},
	{ID: "startup.folder", Action: "startup_tools", Mode: "folder_startups", Risk: RiskSafe, Aliases: []string{"startup folder list", "برامج بدء التشغيل من مجلد startup"}},
	{ID: "startup.impact", Action: "startup_tools", Mode: "startup_impact_time", Risk: RiskSafe, Aliases: []string{"startup impact time", "وقت تحميل برامج بدء التشغيل"}},

	{ID: "perf.top_cpu5", Action: "performance_tools", Mode: "top_cpu", Risk: RiskSafe, Aliases: []string{"top 5 cpu", "اكثر 5 تطبيقات تستهلك المعالج", "اعلى 5 cpu"}},
	{ID: "perf.top_ram5", Action: "performance_tools", Mode: "top_ram", Risk: RiskSafe, Aliases: []string{"top 5 ram", "اكثر 5 تطبيقات تستهلك الرام", "اعلى 5 ram"}},
	{ID: "perf.top_disk5", Action: "performance_tools", Mode: "top_disk", Risk: RiskSafe, Aliases: []string{"top 5 disk", "اكثر 5 تطبيقات تستهلك القرص", "اعلى 5 disk"}},
	{ID: "perf.total_ram", Action: "performance_tools", Mode: "total_ram_percent", Risk: RiskSafe, Aliases: []string{"total ram percent", "اجمالي استهلاك الرام", "نسبة استهلاك الرام"}},
	{ID: "perf.total_cpu", Action: "performance_tools", Mode: "total_cpu_percent", Risk: RiskSafe, Aliases: []string{"total cpu percent", "اجمالي استهلاك المعالج", "نسبة استهلاك المعالج"}},
	{ID: "perf.cpu_clock", Action: "performance_tools", Mode: "cpu_clock", Risk: RiskSafe, Aliases: []string{"cpu clock", "سرعة المعالج الحالية"}},
	{ID: "perf.available_ram", Action: "performance_tools", Mode: "available_ram", Risk: RiskSafe, Aliases: []string{"available ram", "حجم الذاكرة المتاحة", "الرام المتاح"}},
	{ID: "perf.pagefile", Action: "performance_tools", Mode: "pagefile_used", Risk: RiskSafe, Aliases: []string{"page file used", "حجم ملف التبادل", "استهلاك page file"}},

	{ID: "window.minimize", Action: "window_control", Mode: "minimize", Risk: RiskSafe, Aliases: []string{"minimize window", "تصغير النافذه", "تصغير النافذة"}},
	{ID: "window.maximize", Action: "window_control", Mode: "maximize", Risk: RiskSafe, Aliases: []string{"maximize window", "تكبير النافذه", "تكبير النافذة"}},
	{ID: "window.restore", Action: "window_control", Mode: "restore", Risk: RiskSafe, Aliases: []string{"restore window", "استعاده النافذه", "استعادة النافذة"}},
	{ID: "window.close_current", Action: "window_control", Mode: "close_current", Risk: RiskSafe, Aliases: []string{"close current window", "اغلاق النافذه الحاليه"}},
	{ID: "window.show_desktop", Action: "window_control", Mode: "show_desktop", Risk: RiskSafe, Aliases: []string{"show desktop", "تصغير كل النوافذ"}},
	{ID: "window.undo_show_desktop", Action: "window_control", Mode: "undo_show_desktop", Risk: RiskSafe, Aliases: []string{"undo show desktop", "اظهار النوافذ المصغره"}},
	{ID: "window.always_on_top_on", Action: "window_control", Mode: "always_on_top_on", Risk: RiskSafe, Aliases: []string{"always on top", "دائما في المقدمه"}},
	{ID: "window.always_on_top_off", Action: "window_control", Mode: "always_on_top_off", Risk: RiskSafe, Aliases: []string{"remove always on top", "الغاء دائما في المقدمه"}},
	{ID: "window.split_right", Action: "window_control", Mode: "split_right", Risk: RiskSafe, Aliases: []string{"split right", "يمين الشاشه"}},
	{ID: "window.split_left", Action: "window_control", Mode: "split_left", Risk: RiskSafe, Aliases: []string{"split left", "يسار الشاشه"}},
	{ID: "window.move_next_monitor_right", Action: "window_control", Mode: "move_next_monitor_right", Risk: RiskSafe, Aliases: []string{"next monitor", "الشاشه الثانيه"}},
	{ID: "window.alt_tab", Action: "window_control", Mode: "alt_tab", Risk: RiskSafe, Aliases: []string{"alt tab", "تبديل النوافذ"}},
	{ID: "window.task_view", Action: "window_control", Mode: "task_view", Risk: RiskSafe, Aliases: []string{"task view", "عرض المهام"}},
	{ID: "window.transparency", Action: "window_control", Mode: "transparency", Risk: RiskElevated, Aliases: []string{"window opacity", "شفافيه النافذه", "transparency"}, Params: []string{"opacity"}},
	{ID: "window.hide", Action: "window_control", Mode: "hide", Risk: RiskSafe, Aliases: []string{"hide window", "اخفاء نافذه", "إخفاء نافذة"}},
	{ID: "window.show", Action: "window_control", Mode: "show", Risk: RiskSafe, Aliases: []string{"show hidden window", "اظهار النافذه المخفيه", "إظهار النافذة المخفية"}},
	{ID: "window.bring_to_front", Action: "window_control", Mode: "bring_to_front", Risk: RiskSafe, Aliases: []string{"bring to front", "جلب نافذه للمقدمه"}, Params: []string{"query"}},
	{ID: "window.aero_shake", Action: "window_control", Mode: "aero_shake", Risk: RiskSafe, Aliases: []string{"aero shake", "هز النافذه"}},
	{ID: "window.rename_title", Action: "window_control", Mode: "rename_title", Risk: RiskElevated, Aliases: []string{"rename window title", "اعادة تسمية عنوان النافذة", "اعاده تسميه عنوان النافذه"}, Params: []string{"text"}},
	{ID: "window.coords", Action: "window_control", Mode: "coords", Risk: RiskSafe, Aliases: []string{"window coordinates", "احداثيات النافذة", "احداثيات النافذه"}},

	{ID: "mouse.move", Action: "mouse_move", Risk: RiskSafe, Aliases: []string{"move mouse", "حرك الماوس"}, Params: []string{"x", "y"}},
	{ID: "mouse.click_left", Action: "click", Risk: RiskSafe, Aliases: []string{"left click", "نقره يسار", "ضغطة يسار"}},
	{ID: "mouse.click_right", Action: "click", Risk: RiskSafe, Aliases: []string{"right click", "نقره يمين", "ضغطة يمين"}},
	{ID: "mouse.double_click", Action: "click", Risk: RiskSafe, Aliases: []string{"double click", "نقره مزدوجه", "ضغطة مزدوجة"}},
	{ID: "mouse.down", Action: "automation_tools", Mode: "mouse_down", Risk: RiskSafe, Aliases: []string{"mouse down", "الضغط المستمر"}, Params: []string{"key"}},
	{ID: "mouse.up", Action: "automation_tools", Mode: "mouse_up", Risk: RiskSafe, Aliases: []string{"mouse up", "الإفلات", "الافلات"}, Params: []string{"key"}},
	{ID: "mouse.drag_drop", Action: "automation_tools", Mode: "drag_drop", Risk: RiskSafe, Aliases: []string{"drag and drop", "السحب والإفلات", "السحب والافلات"}, Params: []string{"x", "y", "x2", "y2"}},
	{ID: "mouse.scroll_up", Action: "automation_tools", Mode: "scroll_up", Risk: RiskSafe, Aliases: []string{"scroll up", "تمرير للاعلى"}, Params: []string{"repeat_count"}},
	{ID: "mouse.scroll_down", Action: "automation_tools", Mode: "scroll_down", Risk: RiskSafe, Aliases: []string{"scroll down", "تمرير للاسفل"}, Params: []string{"repeat_count"}},
	{ID: "mouse.move_corner", Action: "automation_tools", Mode: "move_corner", Risk: RiskSafe, Aliases: []string{"move mouse corner", "زاوية الشاشة", "زاويه الشاشه"}},
	{ID: "mouse.clip_cursor", Risk: RiskSafe, Aliases: []string{"clip cursor", "حجز الماوس"}, Unsupported: "Locking the pointer is not implemented yet."},
	{ID: "mouse.slow_move", Action: "mouse_move", Risk: RiskSafe, Aliases: []string{"slow motion mouse", "تحريك الماوس ببطء"}, Params: []string{"x", "y"}},
	{ID: "mouse.click_center", Action: "automation_tools", Mode: "click_center", Risk: RiskSafe, Aliases: []string{"click center", "منتصف الشاشة", "منتصف الشاشه"}},
	{ID: "mouse.speed_up", Risk: RiskSafe, Aliases: []string{"increase mouse speed", "زيادة سرعة مؤشر الماوس", "زياده سرعه مؤشر الماوس"}, Unsupported: "Pointer speed changes are not implemented yet."},
	{ID: "mouse.sonar_on", Risk: RiskSafe, Aliases: []string{"sonar effect", "دائرة حول الماوس", "دائره حول الماوس"}, Unsupported: "Pointer locate is not implemented yet."},

	{ID: "keyboard.type", Action: "type_text", Risk: RiskSafe, Aliases: []string{"type text", "اكتب نص", "كتابه"}, Params: []string{"text"}},
	{ID: "keyboard.enter", Action: "press_key", Risk: RiskSafe, Aliases: []string{"press enter", "اضغط enter"}, Params: []string{"key"}},
	{ID: "keyboard.space", Action: "press_key", Risk: RiskSafe, Aliases: []string{"press space", "اضغط مسافه"}, Params: []string{"key"}},
	{ID: "keyboard.backspace", Action: "press_key", Risk: RiskSafe, Aliases: []string{"press backspace", "اضغط backspace"}, Params: []string{"key"}},
	{ID: "keyboard.escape", Action: "press_key", Risk: RiskSafe, Aliases: []string{"press escape", "اضغط escape"}, Params: []string{"key"}},
	{ID: "keyboard.tab", Action: "press_key", Risk: RiskSafe, Aliases: []string{"press tab", "اضغط tab"}, Params: []string{"key"}},
	{ID: "keyboard.arrow_up", Action: "press_key", Risk: RiskSafe, Aliases: []string{"arrow up", "سهم لاعلى"}, Params: []string{"key"}},
	{ID: "keyboard.arrow_down", Action: "press_key", Risk: RiskSafe, Aliases: []string{"arrow down", "سهم لاسفل"}, Params: []string{"key"}},
	{ID: "keyboard.arrow_left", Action: "press_key", Risk: RiskSafe, Aliases: []string{"arrow left", "سهم لليسار"}, Params: []string{"key"}},
	{ID: "keyboard.arrow_right", Action: "press_key", Risk: RiskSafe, Aliases: []string{"arrow right", "سهم لليمين"}, Params: []string{"key"}},
	{ID: "keyboard.copy", Action: "hotkey", Risk: RiskSafe, Aliases: []string{"ctrl c", "اختصار نسخ"}, Params: []string{"keys"}},
	{ID: "keyboard.paste", Action: "hotkey", Risk: RiskSafe, Aliases: []string{"ctrl v", "اختصار لصق"}, Params: []string{"keys"}},
	{ID: "keyboard.undo", Action: "hotkey", Risk: RiskSafe, Aliases: []string{"ctrl z", "اختصار تراجع"}, Params: []string{"keys"}},
	{ID: "keyboard.select_all", Action: "hotkey", Risk: RiskSafe, Aliases: []string{"ctrl a", "اختصار تحديد الكل"}, Params: []string{"keys"}},
	{ID: "keyboard.save", Action: "hotkey", Risk: RiskSafe, Aliases: []string{"ctrl s", "اختصار حفظ"}, Params: []string{"keys"}},
	{ID: "keyboard.caps_lock", Action: "press_key", Risk: RiskSafe, Aliases: []string{"caps lock", "تفعيل caps lock"}, Params: []string{"key"}},
	{ID: "keyboard.num_lock", Action: "press_key", Risk: RiskSafe, Aliases: []string{"num lock", "تفعيل num lock"}, Params: []string{"key"}},
	{ID: "keyboard.type_date", Action: "type_text", Risk: RiskSafe, Aliases: []string{"type current date", "كتابة التاريخ الحالي"}},
	{ID: "keyboard.type_time", Action: "type_text", Risk: RiskSafe, Aliases: []string{"type current time", "كتابة الوقت الحالي"}},
	{ID: "keyboard.repeat_key", Action: "automation_tools", Mode: "repeat_key", Risk: RiskSafe, Aliases: []string{"repeat key", "تكرار ضغطة زر", "تكرار ضغطة مفتاح"}, Params: []string{"key", "repeat_count"}},
	{ID: "keyboard.mouse_keys", Risk: RiskSafe, Aliases: []string{"mouse keys", "الماوس بالكيبورد"}, Unsupported: "Mouse keys toggle is not implemented yet."},
	{ID: "keyboard.emoji_panel", Risk: RiskSafe, Aliases: []string{"emoji panel", "لوحه الايموجي"}, Unsupported: "The emoji panel shortcut is not implemented yet."},
	{ID: "keyboard.start_menu", Action: "shell_tools", Mode: "start_menu", Risk: RiskSafe, Aliases: []string{"windows key", "start menu", "قائمه ابدا"}},

	{ID: "shell.new_virtual_desktop", Risk: RiskSafe, Aliases: []string{"new virtual desktop", "سطح مكتب افتراضي جديد"}, Unsupported: "Creating virtual desktops is not implemented yet."},
	{ID: "shell.next_virtual_desktop", Action: "shell_tools", Mode: "next_virtual_desktop", Risk: RiskSafe, Aliases: []string{"next virtual desktop", "التنقل بين الاسطح"}},
	{ID: "shell.prev_virtual_desktop", Action: "shell_tools", Mode: "prev_virtual_desktop", Risk: RiskSafe, Aliases: []string{"previous virtual desktop", "سطح المكتب السابق"}},
	{ID: "shell.close_virtual_desktop", Risk: RiskSafe, Aliases: []string{"close virtual desktop", "اغلاق سطح المكتب الافتراضي"}, Unsupported: "Closing virtual desktops is not implemented yet."},
	{ID: "shell.quick_settings", Risk: RiskSafe, Aliases: []string{"quick settings", "الاعدادات السريعه", "الاعدادات السريعة"}, Unsupported: "Quick settings are not implemented yet."},
	{ID: "shell.notifications", Action: "shell_tools", Mode: "notifications", Risk: RiskSafe, Aliases: []string{"notification center", "مركز الاشعارات", "مركز الاشعارات"}},
	{ID: "shell.search", Action: "shell_tools", Mode: "search", Risk: RiskSafe, Aliases: []string{"windows search", "بحث ويندوز"}},
	{ID: "shell.run", Action: "shell_tools", Mode: "run", Risk: RiskSafe, Aliases: []string{"run dialog", "نافذه run"}},
	{ID: "shell.magnifier_open", Risk: RiskSafe, Aliases: []string{"magnifier", "تكبير منطقه"}, Unsupported: "Magnifier control is not implemented yet."},
	{ID: "shell.magnifier_zoom_out", Risk: RiskSafe, Aliases: []string{"zoom out magnifier", "تصغير منطقة المكبر", "تصغير منطقه المكبر"}, Unsupported: "Magnifier control is not implemented yet."},
	{ID: "shell.magnifier_close", Risk: RiskSafe, Aliases: []string{"close magnifier", "اغلاق المكبر"}, Unsupported: "Magnifier control is not implemented yet."},
	{ID: "shell.file_explorer", Action: "shell_tools", Mode: "file_explorer", Risk: RiskSafe, Aliases: []string{"file explorer", "مستكشف الملفات"}},
	{ID: "shell.empty_ram", Risk: RiskElevated, Aliases: []string{"empty ram", "إفراغ الرام", "افراغ الرام", "تفريغ الرام"}, Unsupported: "Emptying RAM needs root and is not run from chat."},
	{ID: "shell.refresh", Risk: RiskSafe, Aliases: []string{"refresh desktop", "تحديث سطح المكتب"}, Unsupported: "Refreshing the desktop is not implemented yet."},
	{ID: "shell.quick_link_menu", Risk: RiskSafe, Aliases: []string{"win x", "quick link menu", "قائمه الارتباط السريع"}, Unsupported: "The quick link menu is Windows-only."},
	{ID: "shell.narrator_toggle", Risk: RiskSafe, Aliases: []string{"narrator", "الراوي"}, Unsupported: "Screen reader control is not implemented yet."},
}
